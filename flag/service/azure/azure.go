package azure

type Azure struct {
	ClientID       string
	ClientSecret   string
	Cloud          string
	Location       string
	PartnerID      string
	SubscriptionID string
	TenantID       string
}
