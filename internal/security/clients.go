package security

// In-memory client registry (replace with DB/config later).
// Perms map onto routes: catalog.write and customers.* and orders.manage
// are admin-only; storefront clients read the catalog and place orders.
type Client struct {
	ID      string
	Secret  string
	Perms   []string
	Enabled bool
}

var Clients = map[string]Client{
	"admin-console": {
		ID:     "admin-console",
		Secret: "admin-console-secret",
		Perms: []string{
			"catalog.write",
			"customers.read", "customers.write",
			"orders.read", "orders.write", "orders.manage",
		},
		Enabled: true,
	},
	"storefront-web": {
		ID:      "storefront-web",
		Secret:  "storefront-web-secret",
		Perms:   []string{"orders.read", "orders.write"},
		Enabled: true,
	},
	"svc-payments": {
		ID:      "svc-payments",
		Secret:  "payments-secret",
		Perms:   []string{"orders.read", "orders.manage"},
		Enabled: true,
	},
}
