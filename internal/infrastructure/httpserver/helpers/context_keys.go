package helpers

import (
	"github.com/labstack/echo/v4"
)

type ctxKey string

const (
	keyBusinessID ctxKey = "business_id"
)

func SetBusinessID(c echo.Context, id string) { c.Set(string(keyBusinessID), id) }
func GetBusinessIDRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyBusinessID))
	id, ok := v.(string)
	return id, ok && id != ""
}
