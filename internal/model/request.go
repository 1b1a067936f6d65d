package model

type CreateStudentRequest struct {
	Enrollment string `json:"enrollment" validate:"required"`
	FirstName  string `json:"firstName" validate:"required,min=3"`
	LastName   string `json:"lastName" validate:"required,min=3"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Grade      string `json:"grade" validate:"required"`
	Section    string `json:"section" validate:"required"`
}

type UpdateStudentRequest struct {
	FirstName string        `json:"firstName" validate:"omitempty,min=3"`
	LastName  string        `json:"lastName" validate:"omitempty,min=3"`
	Email     string        `json:"email" validate:"omitempty,email"`
	Phone     string        `json:"phone"`
	Grade     string        `json:"grade"`
	Section   string        `json:"section"`
	Status    StudentStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type CreateCategoryRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required,min=3"`
	Description string `json:"description" validate:"max=300"`
}

type UpdateCategoryRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name" validate:"omitempty,min=3"`
	Description string `json:"description" validate:"max=300"`
}

type CreateBookRequest struct {
	ISBN        string `json:"isbn" validate:"required"`
	Title       string `json:"title" validate:"required,min=3"`
	Author      string `json:"author" validate:"required"`
	Publisher   string `json:"publisher" validate:"required"`
	Year        int    `json:"year" validate:"required,min=1900"`
	CategoryUid string `json:"categoryUid" validate:"required,uuid"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"max=500"`
	Total       int    `json:"totalCount" validate:"required,min=0"`
}

type UpdateBookRequest struct {
	Title       string `json:"title" validate:"omitempty,min=3"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	Year        int    `json:"year" validate:"omitempty,min=1900"`
	CategoryUid string `json:"categoryUid" validate:"omitempty,uuid"`
	Location    string `json:"location"`
	Description string `json:"description" validate:"max=500"`
}

type CreateLoanRequest struct {
	StudentUid         string `json:"studentUid" validate:"required,uuid"`
	BookUid            string `json:"bookUid" validate:"required,uuid"`
	CheckoutDate       Date   `json:"checkoutDate" validate:"required"`
	ExpectedReturnDate Date   `json:"expectedReturnDate" validate:"required"`
}

type CreateReturnRequest struct {
	ActualReturnDate Date      `json:"actualReturnDate" validate:"required"`
	Condition        Condition `json:"condition" validate:"required,oneof=EXCELLENT GOOD FAIR DAMAGED"`
	Notes            string    `json:"notes" validate:"max=500"`
}

type CreateFineRequest struct {
	StudentUid string  `json:"studentUid" validate:"required,uuid"`
	LoanUid    string  `json:"loanUid" validate:"omitempty,uuid"`
	Amount     float64 `json:"amount" validate:"required"`
	Reason     string  `json:"reason"`
}

type FulfillReservationRequest struct {
	CheckoutDate       Date `json:"checkoutDate" validate:"required"`
	ExpectedReturnDate Date `json:"expectedReturnDate" validate:"required"`
}

type CreateReservationRequest struct {
	StudentUid     string `json:"studentUid" validate:"required,uuid"`
	BookUid        string `json:"bookUid" validate:"required,uuid"`
	ReservedDate   Date   `json:"reservedDate" validate:"required"`
	ExpirationDate Date   `json:"expirationDate" validate:"required"`
}

type UserCreateRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=ADMIN USER"`
}

type UpdateUserRequest struct {
	Email  string     `json:"email" validate:"omitempty,email"`
	Role   string     `json:"role" validate:"omitempty,oneof=ADMIN USER"`
	Status UserStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type AuthRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	ExpiresIn   int    `json:"expiresIn"`
	AccessToken string `json:"accessToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}
