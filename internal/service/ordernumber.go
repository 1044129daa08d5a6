package service

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newOrderNumber генерирует человекочитаемый номер заказа:
// STL-<миллисекунды в base36>-<8 случайных hex-символов>, всё в верхнем
// регистре. Уникальность дополнительно гарантирует unique-индекс в БД.
func newOrderNumber(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	u := uuid.New()
	rnd := strings.ToUpper(hex.EncodeToString(u[:4]))
	return fmt.Sprintf("STL-%s-%s", ts, rnd)
}
