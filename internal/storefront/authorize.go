// internal/storefront/authorize.go
package storefront

// Action is a privileged or public step the storefront may take.
type Action string

const (
	ActionBrowse         Action = "browse"
	ActionOpenAdmin      Action = "open_admin"
	ActionManageCatalog  Action = "manage_catalog"
	ActionUploadMedia    Action = "upload_media"
	ActionViewStats      Action = "view_stats"
	ActionManageAccounts Action = "manage_accounts"
)

// Decision is the outcome of Authorize. Reason is empty when allowed.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// Authorize is the single check consulted before every privileged call.
// The server enforces the same rule for catalog mutations.
func Authorize(user CurrentUser, action Action) Decision {
	switch action {
	case ActionBrowse:
		return allow()
	case ActionOpenAdmin:
		if user.IsGuest() {
			return deny("sign in to open the admin area")
		}
		return allow()
	case ActionManageCatalog, ActionUploadMedia, ActionViewStats, ActionManageAccounts:
		if user.IsGuest() {
			return deny("sign in as an administrator to continue")
		}
		if !user.IsAdmin() {
			return deny("administrator role required")
		}
		return allow()
	default:
		return deny("unknown action")
	}
}
