package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Arena-specific error codes
const (
	// Backend API errors
	CodeAPIRequestFailed Code = "API_REQUEST_FAILED"
	CodeAPIBadStatus     Code = "API_BAD_STATUS"
	CodeAPIDecodeFailed  Code = "API_DECODE_FAILED"
	CodeMatchNotFound    Code = "MATCH_NOT_FOUND"
	CodeBountyNotFound   Code = "BOUNTY_NOT_FOUND"
	CodeAgentNotFound    Code = "AGENT_NOT_FOUND"

	// Live feed / WebSocket errors
	CodeWebSocketConnectionError Code = "WEBSOCKET_CONNECTION_ERROR"
	CodeWebSocketReconnecting    Code = "WEBSOCKET_RECONNECTING"
	CodeWebSocketClosed          Code = "WEBSOCKET_CLOSED"
	CodeWebSocketSendError       Code = "WEBSOCKET_SEND_ERROR"
	CodeFeedDecodeFailed         Code = "FEED_DECODE_FAILED"

	// Chain / wallet errors
	CodeChainConnectionFailed Code = "CHAIN_CONNECTION_FAILED"
	CodeChainRPCError         Code = "CHAIN_RPC_ERROR"
	CodeContractCallFailed    Code = "CONTRACT_CALL_FAILED"
	CodeTxSendFailed          Code = "TX_SEND_FAILED"
	CodeTxReverted            Code = "TX_REVERTED"
	CodeInsufficientAllowance Code = "INSUFFICIENT_ALLOWANCE"
	CodeNoSigner              Code = "NO_SIGNER"

	// Token amount errors
	CodeInvalidAmount Code = "INVALID_AMOUNT"

	// Circuit breaker errors
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
