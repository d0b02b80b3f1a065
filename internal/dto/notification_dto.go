package dto

type RegisterDeviceRequest struct {
	Token string `json:"token"`
}

type LogoSearchResponse struct {
	LogoURL string `json:"logo_url"`
}
