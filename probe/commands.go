package probe

import (
	"strconv"

	"github.com/valyala/fasttemplate"

	"github.com/rahulnandan-cmyk/brightnessandtimeout/probe/definitions"
)

// Shell command templates. Everything the probe sends to the device is
// rendered from one of these.
var (
	tapTemplate        = fasttemplate.New("input tap {{x}} {{y}}", "{{", "}}")
	keyEventTemplate   = fasttemplate.New("input keyevent {{code}}", "{{", "}}")
	getSettingTemplate = fasttemplate.New("settings get system {{key}}", "{{", "}}")
	putGlobalTemplate  = fasttemplate.New("settings put global {{key}} {{value}}", "{{", "}}")
)

const (
	cmdDismissKeyguard   = "wm dismiss-keyguard"
	cmdDisplayPowerQuery = "dumpsys power | grep 'Display Power'"
	cmdWakefulnessQuery  = "dumpsys power | grep mWakefulness"
)

// TapCommand renders the tap command for a coordinate. Fractional
// positions keep their decimals, whole positions render bare.
func TapCommand(c definitions.Coordinate) string {
	return tapTemplate.ExecuteString(map[string]interface{}{
		"x": formatPosition(c.X),
		"y": formatPosition(c.Y),
	})
}

// KeyEventCommand renders the key injection command for a key code.
func KeyEventCommand(code string) string {
	return keyEventTemplate.ExecuteString(map[string]interface{}{
		"code": code,
	})
}

// GetSettingCommand renders the system setting readback command.
func GetSettingCommand(key string) string {
	return getSettingTemplate.ExecuteString(map[string]interface{}{
		"key": key,
	})
}

// PutGlobalCommand renders the global setting write command.
func PutGlobalCommand(key string, value int) string {
	return putGlobalTemplate.ExecuteString(map[string]interface{}{
		"key":   key,
		"value": strconv.Itoa(value),
	})
}

func formatPosition(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
