package audit

import "strings"

// ActionResource holds action and resource derived from an HTTP route.
type ActionResource struct {
	Action   string
	Resource string
}

// ParseRoute returns action and resource for an HTTP method and path
// (e.g. POST /v1/auth/login -> login/auth, GET /v1/admin/users -> list/user).
// Auth routes audit as their verb segment; admin routes derive the action
// from the HTTP method and the resource from the collection segment.
func ParseRoute(method, path string) ActionResource {
	path = strings.Trim(strings.TrimPrefix(path, "/v1"), "/")
	if path == "" {
		return ActionResource{Action: "unknown", Resource: "unknown"}
	}
	segs := strings.Split(path, "/")
	switch segs[0] {
	case "auth":
		if len(segs) < 2 {
			return ActionResource{Action: "unknown", Resource: "auth"}
		}
		action := strings.ReplaceAll(segs[1], "-", "_")
		return ActionResource{Action: action, Resource: "auth"}
	case "me":
		return ActionResource{Action: "get", Resource: "user"}
	case "admin":
		if len(segs) < 2 {
			return ActionResource{Action: "unknown", Resource: "admin"}
		}
		resource := collectionToResource(segs[1])
		// trailing verb segment (e.g. /admin/users/{id}/suspend) wins over the HTTP method
		if len(segs) >= 4 {
			return ActionResource{Action: strings.ReplaceAll(segs[len(segs)-1], "-", "_"), Resource: resource}
		}
		return ActionResource{Action: methodToAction(method, len(segs) > 2), Resource: resource}
	default:
		return ActionResource{Action: strings.ToLower(method), Resource: segs[0]}
	}
}

func collectionToResource(collection string) string {
	switch collection {
	case "users":
		return "user"
	case "companies":
		return "company"
	case "audit-logs":
		return "audit_log"
	default:
		return strings.TrimSuffix(collection, "s")
	}
}

func methodToAction(method string, hasID bool) string {
	switch method {
	case "GET":
		if hasID {
			return "get"
		}
		return "list"
	case "POST":
		return "create"
	case "PUT", "PATCH":
		return "update"
	case "DELETE":
		return "delete"
	default:
		return strings.ToLower(method)
	}
}
