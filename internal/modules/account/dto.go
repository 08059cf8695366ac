package account

type DeleteAccountRequest struct {
	Role     string `json:"role" validate:"required,oneof=student instructor school"`
	Password string `json:"password" validate:"required"`
	SchoolID *int64 `json:"school_id,omitempty"`
}
