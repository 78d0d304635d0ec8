package models

// LoginPayload matches the JSON body required by POST /login
type LoginPayload struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ClientSpecifier string `json:"client_specifier"`
}

// LoginResponse captures the token, region binding and network map
// returned by the login endpoint.
type LoginResponse struct {
	Authtoken struct {
		Authtoken string `json:"authtoken"`
		Message   string `json:"message"`
	} `json:"authtoken"`
	// Region maps a tier code to a human region name,
	// e.g. {"prde": "Europe"}. The tier code selects the REST host.
	Region map[string]string `json:"region"`
	// Networks is keyed by the network ID as a decimal string.
	Networks map[string]LoginNetwork `json:"networks"`
}

// LoginNetwork is the per-network entry embedded in the login response.
type LoginNetwork struct {
	Name      string `json:"name"`
	Onboarded bool   `json:"onboarded"`
}
