package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

// Service provides authentication and authorization functionality.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Capability is the effective set of flags a user holds on one category.
type Capability struct {
	View    bool `json:"view"`
	Submit  bool `json:"submit"`
	Revise  bool `json:"revise"`
	Exclude bool `json:"exclude"`
	Approve bool `json:"approve"`
}

// or folds another capability set into this one.
func (c *Capability) or(other Capability) {
	c.View = c.View || other.View
	c.Submit = c.Submit || other.Submit
	c.Revise = c.Revise || other.Revise
	c.Exclude = c.Exclude || other.Exclude
	c.Approve = c.Approve || other.Approve
}

// Has reports whether the named action is granted. Unknown action names
// report false.
func (c Capability) Has(action string) bool {
	switch action {
	case ActionView:
		return c.View
	case ActionSubmit:
		return c.Submit
	case ActionRevise:
		return c.Revise
	case ActionExclude:
		return c.Exclude
	case ActionApprove:
		return c.Approve
	default:
		return false
	}
}

// CategoryPermission pairs a category with the caller's effective
// capability set on it.
type CategoryPermission struct {
	Category   models.Category `json:"category"`
	Capability Capability      `json:"capability"`
}

// EffectivePermissions computes the user's effective capability set for
// every category: the logical OR of each flag across every grant held by
// every group the user belongs to. Every category appears in the result,
// all-false when nothing grants it. The computation is read-only and
// independent of the order groups or grants are stored in.
func (s *Service) EffectivePermissions(userID uint64) ([]CategoryPermission, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	// a session pointing at a deleted user is stale, not merely empty
	if count == 0 {
		return nil, ErrUserNotFound
	}

	var categories []models.Category
	if err := s.db.Order("display_order ASC, created_at ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	var grants []models.Permission
	if err := s.db.Table("permissions").
		Joins("JOIN group_members ON group_members.group_id = permissions.group_id").
		Where("group_members.user_id = ?", userID).
		Find(&grants).Error; err != nil {
		return nil, fmt.Errorf("failed to load permission grants: %w", err)
	}

	effective := make(map[uint]Capability, len(categories))
	for _, g := range grants {
		c := effective[g.CategoryID]
		c.or(Capability{
			View:    g.View,
			Submit:  g.Submit,
			Revise:  g.Revise,
			Exclude: g.Exclude,
			Approve: g.Approve,
		})
		effective[g.CategoryID] = c
	}

	result := make([]CategoryPermission, 0, len(categories))
	for _, category := range categories {
		result = append(result, CategoryPermission{
			Category:   category,
			Capability: effective[category.ID],
		})
	}

	return result, nil
}

// HasCapability checks whether a user holds the named action on the
// category with the given link slug. Administrators hold every capability.
func (s *Service) HasCapability(userID uint64, link, action string) (bool, error) {
	if userID == 0 {
		return false, ErrUnauthenticated
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return false, fmt.Errorf("failed to resolve user: %w", err)
	}

	if user.IsAdministrator() {
		return true, nil
	}

	permissions, err := s.EffectivePermissions(userID)
	if err != nil {
		return false, err
	}

	for _, p := range permissions {
		if p.Category.Link == link && p.Capability.Has(action) {
			return true, nil
		}
	}

	return false, nil
}

// Approvers returns the de-duplicated list of users holding approve on any
// category row matching the given link slug. De-duplication is keyed by
// user id with the first occurrence winning. Returns an empty list, never
// an error, when no category, grant or member matches.
func (s *Service) Approvers(link string) ([]models.User, error) {
	var users []models.User

	err := s.db.Table("users").
		Joins("JOIN group_members ON group_members.user_id = users.id").
		Joins("JOIN permissions ON permissions.group_id = group_members.group_id").
		Joins("JOIN categories ON categories.id = permissions.category_id").
		Where("categories.link = ? AND permissions.approve = ?", link, true).
		Order("group_members.group_id ASC, users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve approvers: %w", err)
	}

	seen := make(map[uint64]bool, len(users))
	result := make([]models.User, 0, len(users))
	for _, u := range users {
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		result = append(result, u)
	}

	return result, nil
}

// UserGroups retrieves all groups a user belongs to.
func (s *Service) UserGroups(userID uint64) ([]models.Group, error) {
	var groups []models.Group

	err := s.db.Table("groups").
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user groups: %w", err)
	}

	return groups, nil
}
