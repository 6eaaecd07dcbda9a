package wrapper

type ResponseWrapper struct {
	Data    interface{} `json:"data"`
	Success bool        `json:"success"`
}

type SuccessWrapper struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}
