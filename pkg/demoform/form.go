// Package demoform models the multi-step demo-request wizard as an explicit
// state machine: three steps with forward transitions gated on the current
// step's required fields, free backward transitions, and a consent-gated
// submission. Submission is simulated locally with a fixed delay — there is
// no network call yet.
package demoform

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Step identifies a wizard step.
type Step int

const (
	StepContact Step = iota
	StepCompany
	StepInterests
)

func (s Step) String() string {
	switch s {
	case StepContact:
		return "contact"
	case StepCompany:
		return "company"
	case StepInterests:
		return "interests"
	default:
		return "unknown"
	}
}

var ErrLastStep = errors.New("demoform: already on the last step")
var ErrConsentRequired = errors.New("demoform: consent is required before submission")
var ErrNotOnFinalStep = errors.New("demoform: submission is only allowed from the final step")

// FieldError reports a single failed field check.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("demoform: %s %s", e.Field, e.Reason)
}

// Deliberately loose: presence of local part, @, and a dotted domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactDetails are the step-one fields.
type ContactDetails struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string // optional
}

// CompanyDetails are the step-two fields.
type CompanyDetails struct {
	CompanyName string
	JobTitle    string
	CompanySize string
	Industry    string
}

// Receipt confirms a (simulated) submission.
type Receipt struct {
	Reference   string
	SubmittedAt time.Time
}

// Form is the wizard state. The zero value starts on the contact step.
type Form struct {
	Contact   ContactDetails
	Company   CompanyDetails
	Interests []string // optional free-choice tags
	Consent   bool

	step Step

	// SubmitDelay is the simulated network latency. Zero means the
	// default; tests shorten it.
	SubmitDelay time.Duration
}

const defaultSubmitDelay = 1500 * time.Millisecond

// New returns a Form positioned on the contact step.
func New() *Form {
	return &Form{}
}

// Step returns the current step.
func (f *Form) Step() Step {
	return f.step
}

// Next validates the current step and advances. The final step has no Next;
// use Submit.
func (f *Form) Next() error {
	switch f.step {
	case StepContact:
		if err := f.validateContact(); err != nil {
			return err
		}
	case StepCompany:
		if err := f.validateCompany(); err != nil {
			return err
		}
	case StepInterests:
		return ErrLastStep
	}
	f.step++
	return nil
}

// Back moves one step backward. A no-op on the first step.
func (f *Form) Back() {
	if f.step > StepContact {
		f.step--
	}
}

// Submit finalises the wizard from the last step. All prior step validations
// are re-run, consent is required, and the submission itself is simulated
// with a fixed delay. Nothing stops a caller from submitting twice.
func (f *Form) Submit(ctx context.Context) (*Receipt, error) {
	if f.step != StepInterests {
		return nil, ErrNotOnFinalStep
	}
	if err := f.validateContact(); err != nil {
		return nil, err
	}
	if err := f.validateCompany(); err != nil {
		return nil, err
	}
	if !f.Consent {
		return nil, ErrConsentRequired
	}

	delay := f.SubmitDelay
	if delay <= 0 {
		delay = defaultSubmitDelay
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(delay):
	}

	now := time.Now().UTC()
	return &Receipt{
		Reference:   fmt.Sprintf("DEMO-%d", now.UnixMilli()),
		SubmittedAt: now,
	}, nil
}

func (f *Form) validateContact() error {
	if f.Contact.FirstName == "" {
		return &FieldError{Field: "firstName", Reason: "is required"}
	}
	if f.Contact.LastName == "" {
		return &FieldError{Field: "lastName", Reason: "is required"}
	}
	if f.Contact.Email == "" {
		return &FieldError{Field: "email", Reason: "is required"}
	}
	if !emailPattern.MatchString(f.Contact.Email) {
		return &FieldError{Field: "email", Reason: "must be a valid email"}
	}
	return nil
}

func (f *Form) validateCompany() error {
	if f.Company.CompanyName == "" {
		return &FieldError{Field: "companyName", Reason: "is required"}
	}
	if f.Company.JobTitle == "" {
		return &FieldError{Field: "jobTitle", Reason: "is required"}
	}
	if f.Company.CompanySize == "" {
		return &FieldError{Field: "companySize", Reason: "is required"}
	}
	if f.Company.Industry == "" {
		return &FieldError{Field: "industry", Reason: "is required"}
	}
	return nil
}
