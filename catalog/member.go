package catalog

import (
	"fmt"
	"strings"
	"time"
)

// MemberIDString is a type alias for string, representing a member identifier in the format "M###".
type MemberIDString = string

// Members is an alias type for a slice of Member.
type Members = []Member

// Member is a registered library member.
// The email is persisted lowercased and must be unique across all members;
// a Member is never mutated or deleted after registration.
type Member struct {
	ID         MemberIDString
	Name       string
	Email      string
	Phone      string
	Department string
	JoinDate   time.Time
}

// BuildMember is a factory method for Member.
// Name and department are trimmed and title-cased, the email is lowercased,
// and the phone is trimmed but otherwise unvalidated.
func BuildMember(id MemberIDString, name string, email string, phone string, department string, joinDate time.Time) Member {
	return Member{
		ID:         id,
		Name:       TitleCase(name),
		Email:      NormalizeEmail(email),
		Phone:      strings.TrimSpace(phone),
		Department: TitleCase(department),
		JoinDate:   ToDate(joinDate),
	}
}

// NextMemberID returns the identifier assigned to the next registered member,
// given the current number of members in the registry.
func NextMemberID(count int) MemberIDString {
	return fmt.Sprintf("M%03d", count+1)
}

// ToRow maps the member onto the MembersTable schema.
func (m Member) ToRow() Row {
	return Row{
		"member_id":  m.ID,
		"name":       m.Name,
		"email":      m.Email,
		"phone":      m.Phone,
		"department": m.Department,
		"join_date":  FormatDate(m.JoinDate),
	}
}

// MemberFromRow builds a Member from a MembersTable row.
func MemberFromRow(row Row) (Member, error) {
	joinDate, err := ParseDate(row["join_date"])
	if err != nil {
		return Member{}, err
	}

	return Member{
		ID:         row["member_id"],
		Name:       row["name"],
		Email:      row["email"],
		Phone:      row["phone"],
		Department: row["department"],
		JoinDate:   joinDate,
	}, nil
}
