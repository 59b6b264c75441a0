package registry

import (
	"context"
	"strings"

	"librarium/catalog"
)

const (
	logMsgMemberRegistered = "member registered"
	logAttrMemberID        = "member_id"
	logAttrEmail           = "email"
)

// MemberRegistry manages registered members on top of a TableStore.
// Members are created once and never mutated or deleted afterwards.
type MemberRegistry struct {
	store TableStore
	settings
}

// NewMemberRegistry creates a MemberRegistry with optional configuration.
func NewMemberRegistry(store TableStore, options ...Option) (MemberRegistry, error) {
	if store == nil {
		return MemberRegistry{}, catalog.ErrNilStoreSupplied
	}

	r := MemberRegistry{
		store:    store,
		settings: defaultSettings(),
	}

	for _, option := range options {
		option(&r.settings)
	}

	return r, nil
}

// Register adds a new member and persists the registry.
// The email is compared case-insensitively against all existing members;
// a duplicate fails with catalog.ErrDuplicateEmail and leaves the registry
// unchanged. The join date is stamped with the registry clock.
func (r MemberRegistry) Register(ctx context.Context, name string, email string, phone string, department string) (catalog.Member, error) {
	members, err := r.loadMembers(ctx)
	if err != nil {
		return catalog.Member{}, err
	}

	normalizedEmail := catalog.NormalizeEmail(email)
	for _, member := range members {
		if member.Email == normalizedEmail {
			return catalog.Member{}, catalog.ErrDuplicateEmail
		}
	}

	member := catalog.BuildMember(catalog.NextMemberID(len(members)), name, email, phone, department, r.now())
	members = append(members, member)

	if err := r.saveMembers(ctx, members); err != nil {
		return catalog.Member{}, err
	}

	r.logInfo(logMsgMemberRegistered, logAttrMemberID, member.ID, logAttrEmail, member.Email)

	return member, nil
}

// FindByID returns the member with the given identifier,
// or catalog.ErrMemberNotFound if it is absent.
func (r MemberRegistry) FindByID(ctx context.Context, id catalog.MemberIDString) (catalog.Member, error) {
	members, err := r.loadMembers(ctx)
	if err != nil {
		return catalog.Member{}, err
	}

	for _, member := range members {
		if member.ID == id {
			return member, nil
		}
	}

	return catalog.Member{}, catalog.ErrMemberNotFound
}

// Search returns all members whose name, email, or department contains the
// keyword, case-insensitive.
func (r MemberRegistry) Search(ctx context.Context, keyword string) (catalog.Members, error) {
	members, err := r.loadMembers(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(keyword)
	matches := catalog.Members{}

	for _, member := range members {
		if strings.Contains(strings.ToLower(member.Name), needle) ||
			strings.Contains(strings.ToLower(member.Email), needle) ||
			strings.Contains(strings.ToLower(member.Department), needle) {
			matches = append(matches, member)
		}
	}

	return matches, nil
}

// List returns all members in registration order.
func (r MemberRegistry) List(ctx context.Context) (catalog.Members, error) {
	return r.loadMembers(ctx)
}

func (r MemberRegistry) loadMembers(ctx context.Context) (catalog.Members, error) {
	rows, err := r.store.ReadAll(ctx, catalog.MembersTable)
	if err != nil {
		return nil, err
	}

	members := make(catalog.Members, 0, len(rows))
	for _, row := range rows {
		member, rowErr := catalog.MemberFromRow(row)
		if rowErr != nil {
			return nil, rowErr
		}

		members = append(members, member)
	}

	return members, nil
}

func (r MemberRegistry) saveMembers(ctx context.Context, members catalog.Members) error {
	rows := make(catalog.Rows, 0, len(members))
	for _, member := range members {
		rows = append(rows, member.ToRow())
	}

	return r.store.WriteAll(ctx, catalog.MembersTable, rows)
}
