package constant

// Error is the shared slog attribute key for errors.
const Error = "error"
