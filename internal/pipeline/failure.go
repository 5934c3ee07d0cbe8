package pipeline

// Kind tags the failure variants a pipeline operation can produce. Keeping
// the variants explicit lets the response mapper stay a total function over
// outcomes instead of matching on error strings.
type Kind int

// Failure kinds.
const (
	// KindMissingBody means the request carried no decodable JSON body.
	KindMissingBody Kind = iota
	// KindMissingField means a required string field was absent or null.
	KindMissingField
	// KindMissingUserIDClaim means the verified token carried no user id.
	KindMissingUserIDClaim
	// KindUnauthenticated means token verification failed.
	KindUnauthenticated
	// KindDuplicateLogin means the submitted login is already registered.
	KindDuplicateLogin
	// KindInvalidCredentials means no user matched the login/password pair.
	KindInvalidCredentials
	// KindStore means an underlying store or token operation failed.
	KindStore
)

// Failure is the tagged outcome of a failed pipeline step. Cause is set for
// KindStore and carries the underlying error.
type Failure struct {
	Kind  Kind
	Cause error
}

// storeFailure wraps an underlying store error as a failure.
func storeFailure(err error) *Failure {
	return &Failure{Kind: KindStore, Cause: err}
}
