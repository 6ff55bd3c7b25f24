package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// ContactProfile holds the optional free-text directory fields. Every field is
// nullable: an absent value stays NULL in storage and is omitted from JSON.
type ContactProfile struct {
	FullnameEn       *string `json:"fullnameEn,omitempty"`
	Gender           *string `json:"gender,omitempty"`
	Title            *string `json:"title,omitempty"`
	TitleEn          *string `json:"titleEn,omitempty"`
	PersonalCode     *string `json:"personalCode,omitempty"`
	BC               *string `json:"BC,omitempty"`
	BCEn             *string `json:"BCEn,omitempty"`
	Edu              *string `json:"edu,omitempty"`
	Major            *string `json:"major,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Mobile           *string `json:"mobile,omitempty"`
	HiredDate        *string `json:"hiredDate,omitempty"`
	Father           *string `json:"father,omitempty"`
	BirthShamsi      *string `json:"birthShamsi,omitempty"`
	BirthMiladi      *string `json:"birthMiladi,omitempty"`
	BirthLoc         *string `json:"birthLoc,omitempty"`
	Marriage         *string `json:"marriage,omitempty"`
	ChildrenNum      *string `json:"childrenNum,omitempty"`
	CodeMeli         *string `json:"codeMeli,omitempty"`
	Shenasname       *string `json:"shenasname,omitempty"`
	ShenasnameSerial *string `json:"shenasnameSerial,omitempty"`
	InsuranceNum     *string `json:"insuranceNum,omitempty"`
	InsuranceCode    *string `json:"insuranceCode,omitempty"`
	InsuranceTitle   *string `json:"insuranceTitle,omitempty"`
	Passport         *string `json:"passport,omitempty"`
	PassportExpire   *string `json:"passportExpire,omitempty"`
	SOS              *string `json:"SOS,omitempty"`
	PersonalMail     *string `json:"personalMail,omitempty"`
}

type Contact struct {
	ID             uuid.UUID     `json:"id"`
	FullName       string        `json:"fullName"`
	Email          string        `json:"email"`
	Extension      string        `json:"extension"`
	OrganizationID uuid.UUID     `json:"organizationId"`
	Organization   *Organization `json:"organization,omitempty"`
	ContactProfile
	CreatedAt time.Time `json:"createdAt"`
}

type ContactsSortBy string

func (s ContactsSortBy) String() string {
	return string(s)
}

func (s ContactsSortBy) IsValid() bool {
	switch s {
	case ContactsSortByFullName, ContactsSortByEmail, ContactsSortByCreatedAt:
		return true
	default:
		return false
	}
}

const (
	ContactsSortByFullName  ContactsSortBy = "full_name"
	ContactsSortByEmail     ContactsSortBy = "email"
	ContactsSortByCreatedAt ContactsSortBy = "created_at"
)

type OrderBy string

func (o OrderBy) String() string {
	return string(o)
}

func (o OrderBy) IsValid() bool {
	switch o {
	case ASC, DESC:
		return true
	default:
		return false
	}
}

const (
	ASC  OrderBy = "asc"
	DESC OrderBy = "desc"
)

type ContactsFilter struct {
	OrganizationID *uuid.UUID
	SortBy         ContactsSortBy
	OrderBy        OrderBy
}
