package middlewares

const (
	CtxRequestID = "request_id"
	// CtxAdminGate records the gate outcome for protected requests.
	CtxAdminGate = "admin_gate"
)
