package dto

import "math"

// Response — универсальный конверт успешного ответа.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// ErrorResponse — конверт ошибки; success всегда false.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Машинные коды ошибок, на которые завязан клиент.
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeConflict          = "CONFLICT"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeInternalError     = "INTERNAL_ERROR"
)

func OK(data any) Response {
	return Response{Success: true, Data: data}
}

func OKWithMessage(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

func OKPaginated(data any, page, limit int, total int64) Response {
	return Response{Success: true, Data: data, Meta: &Meta{Pagination: BuildPaginationMeta(page, limit, total)}}
}

func Err(code, message string, details ...FieldError) ErrorResponse {
	return ErrorResponse{Success: false, Error: ErrorBody{Code: code, Message: message, Details: details}}
}

func BuildPaginationMeta(page, limit int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &Pagination{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
