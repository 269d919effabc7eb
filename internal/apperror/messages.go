package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Backend API errors
	CodeAPIRequestFailed: "Arena API request failed",
	CodeAPIBadStatus:     "Arena API returned an error status",
	CodeAPIDecodeFailed:  "Failed to decode arena API response",
	CodeMatchNotFound:    "Match not found",
	CodeBountyNotFound:   "Bounty not found",
	CodeAgentNotFound:    "Agent not found",

	// Live feed / WebSocket errors
	CodeWebSocketConnectionError: "WebSocket connection error",
	CodeWebSocketReconnecting:    "WebSocket reconnecting",
	CodeWebSocketClosed:          "WebSocket connection closed",
	CodeWebSocketSendError:       "Failed to send WebSocket message",
	CodeFeedDecodeFailed:         "Failed to decode live feed event",

	// Chain / wallet errors
	CodeChainConnectionFailed: "Failed to connect to chain RPC node",
	CodeChainRPCError:         "Chain RPC call failed",
	CodeContractCallFailed:    "Smart contract call failed",
	CodeTxSendFailed:          "Failed to send transaction",
	CodeTxReverted:            "Transaction reverted on chain",
	CodeInsufficientAllowance: "Token allowance too low for this operation",
	CodeNoSigner:              "No signing key configured",

	// Token amount errors
	CodeInvalidAmount: "Invalid token amount",

	// Circuit breaker errors
	CodeCircuitOpen: "Circuit breaker is open",
}
