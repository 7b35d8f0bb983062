package create_booking

import "fmt"

// validateRequest валидирует входные данные запроса
// Границы временного диапазона проверяются отдельно доменным профилем
func validateRequest(req *Request) error {
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if req.CustomerID != nil && *req.CustomerID == "" {
		return fmt.Errorf("%w: customerId must not be empty", ErrInvalidInput)
	}

	if req.ClientRequestID != nil && *req.ClientRequestID == "" {
		return fmt.Errorf("%w: clientRequestId must not be empty", ErrInvalidInput)
	}

	return nil
}
