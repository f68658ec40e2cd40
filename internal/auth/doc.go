// Package auth implements authentication and authorization for the back
// office: sign-in via the social identity provider (with a local bootstrap
// administrator fallback), the per-category permission resolver that unions
// capability grants across a user's groups, the approver resolver, and the
// Fiber middleware enforcing capabilities on routes.
package auth
