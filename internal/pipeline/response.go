package pipeline

import "net/http"

// Op identifies the pipeline operation for response mapping and logging.
type Op string

// Pipeline operations.
const (
	OpRegister  Op = "register"
	OpLogin     Op = "login"
	OpSaveItem  Op = "save_item"
	OpListItems Op = "list_items"
)

// Response is the outcome of a pipeline operation, ready to be written to
// the wire. Message mirrors the status message of the original service; it
// is sent as a plain text body when Body is nil. A non-nil Body is encoded
// as JSON and takes precedence over Message on the wire.
type Response struct {
	Status  int
	Message string
	Body    any
}

// Response messages, byte-identical to the original service (including its
// misspelling of "perform").
const (
	msgMissingBody         = "Json body not included in request"
	msgMissingUserField    = "User or password field not present in request JSON"
	msgMissingTitleField   = "Title field not present in request JSON"
	msgMissingUserIDClaim  = "User Id not present in token"
	msgUnauthenticated     = "Unauthenticated to preform action"
	msgDuplicateLogin      = "User login already present"
	msgInvalidCredentials  = "User login or password incorrect"
	msgRegisterErrorPrefix = "Error while registering user: "
	msgLoginErrorPrefix    = "Error while logging: "
	msgItemSaveFailed      = "Item failed to save"
	msgItemsGetFailed      = "Items failed to get"
)

// mapFailure converts a tagged failure into the HTTP response for the given
// operation. It is total over the failure kinds; an unknown kind falls back
// to a bare 500.
func mapFailure(op Op, f *Failure) Response {
	switch f.Kind {
	case KindMissingBody:
		return Response{Status: http.StatusBadRequest, Message: msgMissingBody}
	case KindMissingField:
		msg := msgMissingUserField
		if op == OpSaveItem || op == OpListItems {
			msg = msgMissingTitleField
		}
		return Response{Status: http.StatusBadRequest, Message: msg}
	case KindMissingUserIDClaim:
		return Response{Status: http.StatusBadRequest, Message: msgMissingUserIDClaim}
	case KindUnauthenticated:
		return Response{Status: http.StatusForbidden, Message: msgUnauthenticated}
	case KindDuplicateLogin, KindInvalidCredentials, KindStore:
		return Response{Status: http.StatusInternalServerError, Message: failureText(op, f)}
	default:
		return Response{Status: http.StatusInternalServerError, Message: "internal error"}
	}
}

// failureText renders the generic-failure message for the operation. The
// original service routed business-rule failures and store failures through
// one failure channel per endpoint; the per-endpoint prefixes and the fixed
// item messages reproduce that wire format.
func failureText(op Op, f *Failure) string {
	switch op {
	case OpRegister:
		return msgRegisterErrorPrefix + failureCause(f)
	case OpLogin:
		return msgLoginErrorPrefix + failureCause(f)
	case OpSaveItem:
		return msgItemSaveFailed
	default:
		return msgItemsGetFailed
	}
}

// failureCause renders the inner message appended to an endpoint prefix.
func failureCause(f *Failure) string {
	switch f.Kind {
	case KindDuplicateLogin:
		return msgDuplicateLogin
	case KindInvalidCredentials:
		return msgInvalidCredentials
	default:
		if f.Cause != nil {
			return f.Cause.Error()
		}
		return "unknown error"
	}
}
