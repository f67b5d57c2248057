package book_appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/akaisui/car-repair-backend-sub000/internal/domain"
)

// generateCode генерирует уникальный код записи вида LH + YYMMDD + 3 случайные цифры
// Число попыток ограничено, при исчерпании возвращается ErrCodeGenerationExhausted
func (uc *UseCase) generateCode(ctx context.Context, now time.Time) (string, error) {
	for attempt := 0; attempt < domain.MaxCodeGenerationAttempts; attempt++ {
		code := fmt.Sprintf("%s%s%03d",
			domain.CodePrefix,
			now.Format(domain.CodeDateFormat),
			uc.random.Intn(1000),
		)

		exists, err := uc.appointmentRepo.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("%w: generateCode - failed to check code uniqueness: %w", ErrInternal, err)
		}

		if !exists {
			return code, nil
		}

		uc.logger.Warn("BookAppointment: code %s already exists, attempt %d/%d",
			code, attempt+1, domain.MaxCodeGenerationAttempts)
	}

	return "", fmt.Errorf("%w: %d attempts", ErrCodeGenerationExhausted, domain.MaxCodeGenerationAttempts)
}
