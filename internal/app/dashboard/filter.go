package dashboard

import (
	"fmt"
	"strings"

	"marketadmin/internal/app/ds"
)

// FilterUsers keeps users whose name or email contains query, ignoring
// case. A blank query keeps everyone.
func FilterUsers(users []ds.User, query string) []ds.User {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]ds.User, 0, len(users))
	for _, u := range users {
		if q == "" || containsFold(u.Name, q) || containsFold(u.Email, q) {
			out = append(out, u)
		}
	}
	return out
}

// FilterOrdersByStatus keeps orders with exactly status. A blank status or
// "all" keeps every order.
func FilterOrdersByStatus(orders []ds.Order, status string) []ds.Order {
	out := make([]ds.Order, 0, len(orders))
	for _, o := range orders {
		if status == "" || status == "all" || string(o.Status) == status {
			out = append(out, o)
		}
	}
	return out
}

type RedeemedFilter string

const (
	RedeemedAll         RedeemedFilter = "all"
	RedeemedOnly        RedeemedFilter = "redeemed"
	RedeemedNotRedeemed RedeemedFilter = "not_redeemed"
)

func ParseRedeemedFilter(s string) (RedeemedFilter, error) {
	switch f := RedeemedFilter(s); f {
	case "":
		return RedeemedAll, nil
	case RedeemedAll, RedeemedOnly, RedeemedNotRedeemed:
		return f, nil
	default:
		return "", fmt.Errorf("unknown redeemed filter %q", s)
	}
}

// FilterLicenses narrows paid orders by their redeemed flag and a search
// term matched against license id, product name, user name and user email.
// Orders that never reported license_redeemed match neither "redeemed" nor
// "not_redeemed".
func FilterLicenses(orders []ds.Order, redeemed RedeemedFilter, search string) []ds.Order {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]ds.Order, 0, len(orders))
	for _, o := range orders {
		switch redeemed {
		case RedeemedOnly:
			if o.LicenseRedeemed == nil || !*o.LicenseRedeemed {
				continue
			}
		case RedeemedNotRedeemed:
			if o.LicenseRedeemed == nil || *o.LicenseRedeemed {
				continue
			}
		}
		if q != "" && !licenseMatches(o, q) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func licenseMatches(o ds.Order, q string) bool {
	if containsFold(o.LicenseID, q) {
		return true
	}
	if o.Product != nil && containsFold(o.Product.Name, q) {
		return true
	}
	if o.User != nil && (containsFold(o.User.Name, q) || containsFold(o.User.Email, q)) {
		return true
	}
	return false
}

// containsFold expects q already lower-cased.
func containsFold(s, q string) bool {
	return strings.Contains(strings.ToLower(s), q)
}
