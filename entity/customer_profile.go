package entity

// CustomerProfile is locally saved convenience data used to auto-fill the
// checkout form for a returning customer. It is not authentication.
type CustomerProfile struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Address *Address `json:"address,omitempty"`
}
