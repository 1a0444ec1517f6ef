package handler

import (
	"strconv"
	"strings"

	"github.com/bluemoon/resident-portal/internal/core/domain"
)

// --- Auth forms ---

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Name            string `form:"name"             validate:"omitempty,min=2"`
	Username        string `form:"username"         validate:"required,max=32,username_chars,not_numeric_only,not_underscore_only,not_reserved"`
	Email           string `form:"email"            validate:"required,email"`
	Phone           string `form:"phone"            validate:"omitempty,phone"`
	Password        string `form:"password"         validate:"required,min=8,has_upper,has_lower,has_digit,has_special"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	Type            string `form:"type"             validate:"required,oneof=manager tenant"`
}

func (f registerForm) info() domain.RegisterInfo {
	role, _ := domain.ParseRole(f.Type)
	return domain.RegisterInfo{
		Name:     strings.TrimSpace(f.Name),
		Username: f.Username,
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
		Password: f.Password,
		Role:     role,
	}
}

type recoveryForm struct {
	Username string `form:"username"`
	Method   string `form:"method" validate:"required,oneof=email phone"`
	Email    string `form:"email"  validate:"required_if=Method email,omitempty,email"`
	Phone    string `form:"phone"  validate:"required_if=Method phone,omitempty,phone"`
}

func (f recoveryForm) info() domain.RecoveryInfo {
	return domain.RecoveryInfo{
		Username: f.Username,
		Method:   domain.RecoveryMethod(f.Method),
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
	}
}

// --- Fee forms ---

type feeForm struct {
	Name           string `form:"name"            validate:"required"`
	Amount         string `form:"amount"          validate:"required,amount"`
	DueDate        string `form:"due_date"        validate:"required,datetime=2006-01-02"`
	IsRequired     bool   `form:"is_required"`
	IsRecurring    bool   `form:"is_recurring"`
	RecurrenceType string `form:"recurrence_type" validate:"required_if=IsRecurring true,omitempty,oneof=weekly monthly yearly"`
}

// input converts a validated form.
func (f feeForm) input() (domain.FeeInput, error) {
	amount, err := strconv.ParseInt(strings.TrimSpace(f.Amount), 10, 64)
	if err != nil {
		return domain.FeeInput{}, err
	}
	due, err := domain.ParseNaiveTime(f.DueDate)
	if err != nil {
		return domain.FeeInput{}, err
	}

	in := domain.FeeInput{
		Name:        strings.TrimSpace(f.Name),
		Amount:      amount,
		DueDate:     due,
		IsRequired:  f.IsRequired,
		IsRecurring: f.IsRecurring,
	}
	if f.IsRecurring {
		rt := domain.RecurrenceType(f.RecurrenceType)
		in.RecurrenceType = &rt
	}
	return in, nil
}

type assignForm struct {
	Rooms  []int `form:"rooms"  validate:"required_without=Floors"`
	Floors []int `form:"floors"`
}

// --- Household forms ---

type payForm struct {
	Payload      string `form:"payload" validate:"required_without_all=AssignmentID FeeID"`
	AssignmentID int    `form:"assignment_id"`
	FeeID        int    `form:"fee_id"`
}

type familyForm struct {
	Name     string `form:"name"     validate:"required"`
	Birthday string `form:"birthday" validate:"required,datetime=2006-01-02"`
}

func (f familyForm) member() (domain.FamilyMember, error) {
	birthday, err := domain.ParseNaiveTime(f.Birthday)
	if err != nil {
		return domain.FamilyMember{}, err
	}
	return domain.FamilyMember{Name: strings.TrimSpace(f.Name), Birthday: birthday}, nil
}

// --- Account forms ---

type settingsForm struct {
	ServerURL string `form:"server_url" validate:"required,url"`
}

type accountForm struct {
	Name  string `form:"name"  validate:"required,min=2"`
	Email string `form:"email" validate:"required,email"`
	Phone string `form:"phone" validate:"required,phone"`
}

type passwordForm struct {
	OldPassword     string `form:"old_password"     validate:"required"`
	NewPassword     string `form:"new_password"     validate:"required,min=8,has_upper,has_lower,has_digit,has_special"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type notificationForm struct {
	Title   string `form:"title"   validate:"required"`
	Message string `form:"message" validate:"required"`
	ToUser  string `form:"to_user" validate:"required_without=SendAll"`
	SendAll bool   `form:"send_all"`
}

func (f notificationForm) input() domain.NotificationInput {
	in := domain.NotificationInput{
		Title:   strings.TrimSpace(f.Title),
		Message: f.Message,
		SendAll: f.SendAll,
	}
	if to := strings.TrimSpace(f.ToUser); to != "" && !f.SendAll {
		in.ToUser = &to
	}
	return in
}

type statusForm struct {
	Status string `form:"status" validate:"required,oneof=active inactive"`
}
