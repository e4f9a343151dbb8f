package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// referencePrefix префикс публичных номеров бронирований
const referencePrefix = "FTV"

// NewBookingReference генерирует публичный номер бронирования:
// временной префикс по дате создания + случайный суффикс.
// Вероятность коллизии пренебрежимо мала, но окончательную уникальность
// гарантирует unique-индекс на колонке reference
func NewBookingReference(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", referencePrefix, now.Format("20060102"), suffix)
}
