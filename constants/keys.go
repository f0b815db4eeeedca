package constants

// Supported device transports.
const (
	ADB = "adb"
)

// Android key event codes injected via `input keyevent`.
const (
	KeycodeWakeup    = "KEYCODE_WAKEUP"
	KeycodeHome      = "KEYCODE_HOME"
	KeycodeEnter     = "KEYCODE_ENTER"
	KeycodeDpadRight = "KEYCODE_DPAD_RIGHT"
	KeycodeDpadLeft  = "KEYCODE_DPAD_LEFT"
)

// System setting keys read back via `settings get system`.
const (
	SettingBrightness    = "screen_brightness"
	SettingScreenTimeout = "screen_off_timeout"
)

// Global setting keys written via `settings put global`.
const (
	SettingStayOnWhilePluggedIn = "stay_on_while_plugged_in"
)
