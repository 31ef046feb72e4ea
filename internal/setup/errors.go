package setup

import "errors"

var (
	// ErrAdminCredentialsRequired is returned when the admin email or password is missing.
	ErrAdminCredentialsRequired = errors.New("Admin email and password are required") //nolint:staticcheck // client visible

	// ErrPasswordTooShort is returned when the admin password is shorter than MinPasswordLen.
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters") //nolint:staticcheck // client visible

	// ErrInvalidAdminEmail is returned when the admin email is not an email address.
	ErrInvalidAdminEmail = errors.New("Admin email address is invalid") //nolint:staticcheck // client visible

	// ErrAlreadyInitialized is returned when setup runs against an initialized system.
	ErrAlreadyInitialized = errors.New("System is already initialized") //nolint:staticcheck // client visible

	// ErrInProgress is returned when another setup holds the setup lease.
	ErrInProgress = errors.New("System setup is already in progress") //nolint:staticcheck // client visible

	// ErrCreateAdmin prefixes failures creating the administrator account.
	ErrCreateAdmin = errors.New("Failed to create admin user") //nolint:staticcheck // client visible

	// ErrInvalidSettings prefixes rejected email or payment settings.
	ErrInvalidSettings = errors.New("Invalid settings") //nolint:staticcheck // client visible
)

// Wizard form errors, in the order they are checked.
var (
	ErrEmailRequired    = errors.New("Email is required")      //nolint:staticcheck // client visible
	ErrPasswordRequired = errors.New("Password is required")   //nolint:staticcheck // client visible
	ErrPasswordMismatch = errors.New("Passwords do not match") //nolint:staticcheck // client visible
	ErrFirstStage       = errors.New("already at the first stage")
	ErrFinalStage       = errors.New("final stage, submit instead")
	ErrNotFinal         = errors.New("submit is only possible on the final stage")
	ErrComplete         = errors.New("setup is complete")
)
