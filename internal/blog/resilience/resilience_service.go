package resilience

import (
	"context"

	"go.uber.org/zap"

	"realworldblog/pkg/logger"
)

// ServiceResilience объединяет Circuit Breaker и повторы для вызовов одной зависимости.
// Повторы применяются только к операциям чтения.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает обертку отказоустойчивости для сервиса.
func NewServiceResilience(serviceName string, breaker CircuitBreakerConfig, retry RetryConfig) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, breaker),
		retry:          NewRetry(serviceName, retry),
	}
}

// State возвращает состояние Circuit Breaker сервиса.
func (r *ServiceResilience) State() CircuitState {
	return r.circuitBreaker.GetState()
}

// Read выполняет идемпотентную операцию: под защитой Circuit Breaker и с повторами.
func Read[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	logger.Log(ctx).Debug(ctx, "executing read with resilience",
		zap.String("service", r.serviceName),
		zap.String("operation", operationName))

	var result T
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, func() error {
			var err error
			result, err = operation()
			return err
		})
	})
	return result, err
}

// Write выполняет операцию записи только под защитой Circuit Breaker, без повторов.
func Write[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	logger.Log(ctx).Debug(ctx, "executing write with resilience",
		zap.String("service", r.serviceName),
		zap.String("operation", operationName))

	var result T
	err := r.circuitBreaker.Execute(ctx, func() error {
		var err error
		result, err = operation()
		return err
	})
	return result, err
}
