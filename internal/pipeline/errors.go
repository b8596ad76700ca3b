package pipeline

import "fmt"

// The pipeline distinguishes two fatal error kinds (input parse, output
// write) from four local kinds that are caught at the contact or object
// boundary and never abort the run. Each carries the context needed for
// manual triage, so tests and log consumers can assert on error kind
// instead of message text.

// InputError means the input manifest could not be fetched or parsed.
// Fatal: the run produces no output.
type InputError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input manifest s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// ResolutionError means one contact could not be resolved to a storage
// location. The contact is skipped; the run continues.
type ResolutionError struct {
	ContactID string
	Err       error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve contact %s: %v", e.ContactID, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// EnumerationError means listing one contact's artifacts failed. The
// contact is skipped; the run continues.
type EnumerationError struct {
	ContactID string
	Bucket    string
	Prefix    string
	Err       error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("enumerate contact %s under s3://%s/%s: %v", e.ContactID, e.Bucket, e.Prefix, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// HumanizationError means transforming one raw transcript failed at fetch,
// model invocation, or persistence. The caller falls back to linking the
// raw artifact.
type HumanizationError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *HumanizationError) Error() string {
	return fmt.Sprintf("humanize s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *HumanizationError) Unwrap() error { return e.Err }

// SignError means issuing a presigned link for one object failed. That
// object's row is omitted; the run continues.
type SignError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *SignError) Error() string {
	return fmt.Sprintf("sign s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *SignError) Unwrap() error { return e.Err }

// OutputError means the final manifest could not be written. Fatal: the
// accumulated rows are unrecoverable.
type OutputError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("output manifest s3://%s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
