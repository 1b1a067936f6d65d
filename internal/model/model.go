package model

import "time"

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
}

type StudentStatus string

const (
	StudentActive   StudentStatus = "ACTIVE"
	StudentInactive StudentStatus = "INACTIVE"
)

type Student struct {
	ID         int           `json:"-" db:"id"`
	StudentUid string        `json:"studentUid" db:"student_uid"`
	Enrollment string        `json:"enrollment" db:"enrollment"`
	FirstName  string        `json:"firstName" db:"first_name"`
	LastName   string        `json:"lastName" db:"last_name"`
	Email      string        `json:"email" db:"email"`
	Phone      string        `json:"phone" db:"phone"`
	Grade      string        `json:"grade" db:"grade"`
	Section    string        `json:"section" db:"section"`
	Status     StudentStatus `json:"status" db:"status"`
}

type ListStudents struct {
	Paging `json:",inline"`
	Items  []Student `json:"items"`
}

type Category struct {
	ID          int    `json:"-" db:"id"`
	CategoryUid string `json:"categoryUid" db:"category_uid"`
	Code        string `json:"code" db:"code"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

type Book struct {
	ID          int    `json:"-" db:"id"`
	BookUid     string `json:"bookUid" db:"book_uid"`
	ISBN        string `json:"isbn" db:"isbn"`
	Title       string `json:"title" db:"title"`
	Author      string `json:"author" db:"author"`
	Publisher   string `json:"publisher" db:"publisher"`
	Year        int    `json:"year" db:"year"`
	CategoryUid string `json:"categoryUid" db:"category_uid"`
	Location    string `json:"location" db:"location"`
	Description string `json:"description" db:"description"`
	Total       int    `json:"totalCount" db:"total_count"`
	Available   int    `json:"availableCount" db:"available_count"`
}

type ListBooks struct {
	Paging `json:",inline"`
	Items  []Book `json:"items"`
}

type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanReturned LoanStatus = "RETURNED"
)

type Loan struct {
	ID                 int        `json:"-" db:"id"`
	LoanUid            string     `json:"loanUid" db:"loan_uid"`
	StudentID          int        `json:"-" db:"student_id"`
	StudentUid         string     `json:"studentUid" db:"student_uid"`
	BookID             int        `json:"-" db:"book_id"`
	BookUid            string     `json:"bookUid" db:"book_uid"`
	CheckoutDate       Date       `json:"checkoutDate" db:"checkout_date"`
	ExpectedReturnDate Date       `json:"expectedReturnDate" db:"expected_return_date"`
	Status             LoanStatus `json:"status" db:"status"`
}

type Condition string

const (
	ConditionExcellent Condition = "EXCELLENT"
	ConditionGood      Condition = "GOOD"
	ConditionFair      Condition = "FAIR"
	ConditionDamaged   Condition = "DAMAGED"
)

type Return struct {
	ID               int       `json:"-" db:"id"`
	ReturnUid        string    `json:"returnUid" db:"return_uid"`
	LoanID           int       `json:"-" db:"loan_id"`
	LoanUid          string    `json:"loanUid" db:"loan_uid"`
	ActualReturnDate Date      `json:"actualReturnDate" db:"actual_return_date"`
	Condition        Condition `json:"condition" db:"condition"`
	LateDays         int       `json:"lateDays" db:"late_days"`
	Notes            string    `json:"notes" db:"notes"`
}

type FineStatus string

const (
	FinePending FineStatus = "PENDING"
	FinePaid    FineStatus = "PAID"
)

type Fine struct {
	ID         int        `json:"-" db:"id"`
	FineUid    string     `json:"fineUid" db:"fine_uid"`
	StudentID  int        `json:"-" db:"student_id"`
	StudentUid string     `json:"studentUid" db:"student_uid"`
	LoanUid    *string    `json:"loanUid,omitempty" db:"loan_uid"`
	Amount     float64    `json:"amount" db:"amount"`
	Reason     string     `json:"reason" db:"reason"`
	IssuedAt   time.Time  `json:"issuedAt" db:"issued_at"`
	Status     FineStatus `json:"status" db:"status"`
}

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "ACTIVE"
	ReservationFulfilled ReservationStatus = "FULFILLED"
	ReservationCancelled ReservationStatus = "CANCELLED"
	ReservationExpired   ReservationStatus = "EXPIRED"
)

type Reservation struct {
	ID             int               `json:"-" db:"id"`
	ReservationUid string            `json:"reservationUid" db:"reservation_uid"`
	StudentID      int               `json:"-" db:"student_id"`
	StudentUid     string            `json:"studentUid" db:"student_uid"`
	BookID         int               `json:"-" db:"book_id"`
	BookUid        string            `json:"bookUid" db:"book_uid"`
	ReservedDate   Date              `json:"reservedDate" db:"reserved_date"`
	ExpirationDate Date              `json:"expirationDate" db:"expiration_date"`
	Status         ReservationStatus `json:"status" db:"status"`
}

type UserStatus string

const (
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

type User struct {
	ID           int        `json:"-" db:"id"`
	UserUid      string     `json:"userUid" db:"user_uid"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         string     `json:"role" db:"role"`
	Status       UserStatus `json:"status" db:"status"`
}
