package health

// Input is empty; the reachability probe takes no parameters.
type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status string `json:"status" example:"OK" doc:"Service reachability status"`
}
