// Package authz resolves UI capabilities from an authenticated identity.
//
// The mapping is pure and advisory: it decides what the client offers,
// never what the server permits. The backend re-enforces every rule; a
// client-side allow is UX convenience, not a security boundary.
package authz

import "github.com/dmitrijs2005/docuport/internal/client/models"

// Role is the closed set of tiers the client recognizes. An identity's
// canonical role is roles[0]; anything else collapses to RoleUnrecognized,
// which carries the same capabilities as the lowest tier.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManager      Role = "manager"
	RoleUser         Role = "user"
	RoleUnrecognized Role = "unrecognized"
)

// RoleOf derives the canonical Role from an identity. A nil identity or an
// identity with no roles maps to RoleUnrecognized.
func RoleOf(identity *models.Identity) Role {
	switch identity.PrimaryRole() {
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	case "user":
		return RoleUser
	default:
		return RoleUnrecognized
	}
}

// Capability is a named permission gating one category of UI action.
type Capability string

const (
	ViewDocuments    Capability = "view_documents"
	UploadDocuments  Capability = "upload_documents"
	EditAnyDocument  Capability = "edit_any_document"
	EditOwnDocument  Capability = "edit_own_document"
	ManageCategories Capability = "manage_categories"
	ManageUsers      Capability = "manage_users"
	ViewAuditLog     Capability = "view_audit_log"
)

// CapabilitySet is the resolved set of capabilities for one identity.
type CapabilitySet map[Capability]struct{}

// Has reports whether the set contains c.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

func newSet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

// CapabilitiesFor maps an identity to its capability set. The result
// depends only on the canonical role: same input, same output.
func CapabilitiesFor(identity *models.Identity) CapabilitySet {
	switch RoleOf(identity) {
	case RoleAdmin:
		return newSet(ViewDocuments, UploadDocuments, EditAnyDocument,
			ManageCategories, ManageUsers, ViewAuditLog)
	case RoleManager:
		return newSet(ViewDocuments, UploadDocuments, EditOwnDocument)
	default:
		return newSet(ViewDocuments)
	}
}

// CanEditDocument is the resource-scoped edit check: admins may edit any
// document, managers only their own uploads, everyone else nothing.
func CanEditDocument(identity *models.Identity, doc *models.Document) bool {
	if identity == nil || doc == nil {
		return false
	}
	switch RoleOf(identity) {
	case RoleAdmin:
		return true
	case RoleManager:
		return identity.ID == doc.UploadedBy
	default:
		return false
	}
}
