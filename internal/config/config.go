package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-KeepInTouch/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Keep In Touch"
	AppID             = "com.github.tartampluch.go-keepintouch"
	KeyringService    = "com.github.tartampluch.go-keepintouch"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs and exports.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 480
	MainWindowHeight    = 560
	SettingsWindowWidth = 600

	// Preference Keys
	PrefPeople          = "people_records"
	PrefLastID          = "people_last_id"
	PrefCardDAVURL      = "carddav_url"
	PrefUsername        = "username"
	PrefLanguage        = "language"
	PrefInterval        = "refresh_interval_min"
	PrefServerPort      = "server_port"
	PrefImportMode      = "import_mode"
	PrefLocalPath       = "local_path"
	PrefReminderEnabled = "reminder_enabled"
	PrefReminderValue   = "reminder_value"
	PrefReminderUnit    = "reminder_unit"
	PrefReminderDir     = "reminder_direction"
	PrefLastRun         = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Upcoming Birthdays Window Constants
// -----------------------------------------------------------------------------

const (
	// Window Dimensions
	UpcomingWinWidth  = 550
	UpcomingWinHeight = 400

	// Table Column IDs
	ColIDName = 0
	ColIDDate = 1
	ColIDAge  = 2

	// Table Layout
	ColWidthName = 250
	ColWidthDate = 120
	ColWidthAge  = 120

	// Display Formats & Placeholders
	DateFormatDisplay = "2006-01-02"
	TablePlaceholder  = "Cell Content"
	AgeUnknown        = "-"
	AgeBirth          = "(birth)"
	LogMsgOpenWin     = "Opening Upcoming Birthdays Window"
	LogMsgSorted      = "Upcoming list sorted"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle        = "win_title"
	TKeyWinSettings     = "win_settings_title"
	TKeyWinUpcoming     = "win_upcoming_title"
	TKeyMenuShow        = "menu_show"
	TKeyMenuUpcoming    = "menu_upcoming"
	TKeyMenuRefresh     = "menu_refresh"
	TKeyMenuSettings    = "menu_settings"
	TKeyTrayStatus      = "tray_status"      // Requires Count > 0
	TKeyTrayStatusZero  = "tray_status_zero" // Explicit key for 0
	TKeyNotifImportOK   = "notif_import_ok"
	TKeyNotifImportErr  = "notif_err_import"
	TKeyModeCardDAV     = "mode_carddav"
	TKeyModeLocal       = "mode_local"
	TKeyLblLanguage     = "lbl_language"
	TKeyHelpLanguage    = "help_language"
	TKeyLblMinutes      = "lbl_minutes_suffix"
	TKeyLblRefresh      = "lbl_refresh_interval"
	TKeyHelpInterval    = "help_interval"
	TKeyLblPort         = "lbl_server_port"
	TKeyHelpPort        = "help_port"
	TKeyLblGeneral      = "lbl_general"
	TKeyLblEnableRem    = "lbl_enable_reminders"
	TKeyUnitDays        = "unit_days"
	TKeyUnitHours       = "unit_hours"
	TKeyUnitMinutes     = "unit_minutes"
	TKeyDirBefore       = "dir_before"
	TKeyDirAfter        = "dir_after"
	TKeyLblNotif        = "lbl_notifications"
	TKeyBtnSave         = "btn_save"
	TKeyBtnCancel       = "btn_cancel"
	TKeyBtnAdd          = "btn_add"
	TKeyBtnBack         = "btn_back"
	TKeyBtnDelete       = "btn_delete"
	TKeyBtnBirthday     = "btn_birthday_link"
	TKeyBtnFollowUp     = "btn_follow_up_link"
	TKeyBtnImport       = "btn_import"
	TKeyBtnExport       = "btn_export"
	TKeyLblFooter       = "lbl_footer"
	TKeyBtnBrowse       = "btn_browse"
	TKeyLblURL          = "lbl_url"
	TKeyHelpURL         = "help_carddav_url"
	TKeyLblUser         = "lbl_user"
	TKeyLblPass         = "lbl_pass"
	TKeyLblImportSource = "lbl_import_source"
	TKeyLblOverdue      = "lbl_overdue"
	TKeyLblFirstName    = "lbl_first_name"
	TKeyLblMiddleName   = "lbl_middle_name"
	TKeyLblLastName     = "lbl_last_name"
	TKeyLblBirthday     = "lbl_birthday"
	TKeyLblLastSeen     = "lbl_last_seen"
	TKeyLblMaxDays      = "lbl_max_days_between"
	TKeyLblAddress      = "lbl_address"
	TKeyLblNotes        = "lbl_notes"
	TKeyConfirmDelete   = "confirm_delete"    // Requires Name
	TKeyConfirmFollowUp = "confirm_follow_up" // Requires Name
	TKeyErrNoBirthday   = "err_no_birthday"
	TKeyEvtSummary      = "event_summary"       // Requires Name
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name (For age 0)
	TKeyEvtFollowUp     = "event_follow_up"     // Requires Name

	// Column Headers & Formats
	TKeyColName    = "col_name"
	TKeyColDate    = "col_date"
	TKeyColAge     = "col_age"
	TKeyFormatDate = "format_date_short" // Date format pattern (e.g., "2006-01-02")
	TKeyAgeBirth   = "age_birth"         // Word for "Birth" / "Naissance" in list

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrMaxDays   = "err_max_days_number"
	TKeyErrDate      = "err_date_format"
	TKeyErrNoCadence = "err_no_cadence"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	ImportModeWeb        = "web"
	ImportModeLocal      = "local"
	DefaultPort          = "18081"
	DefaultRefreshMin    = 60
	DefaultLanguage      = "en"
	DefaultLeapYear      = 2000 // Leap year fallback for birthdays like --02-29
	DefaultReminderValue = 1
	DisabledInterval     = 0

	// Follow-up events start at a fixed local wall time.
	FollowUpHour     = 10
	FollowUpMinute   = 0
	FollowUpDuration = 30 * time.Minute
	HoursPerDay      = 24
)

// ISO8601 Duration Components for Reminders
// RFC 5545 requires the T designator before hour and minute components
// ("-PT2H"), but not before days ("-P1D").
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISOTimeDesignator = "T"
	ISODay            = "D"
	ISOHour           = "H"
	ISOMinute         = "M"
)

// -----------------------------------------------------------------------------
// External Calendar Provider (Google Calendar Template URLs)
// -----------------------------------------------------------------------------

const (
	CalendarRenderURL = "https://calendar.google.com/calendar/render"

	CalParamAction  = "action"
	CalParamText    = "text"
	CalParamDates   = "dates"
	CalParamDetails = "details"
	CalParamRecur   = "recur"

	CalActionTemplate = "TEMPLATE"
	CalRecurYearly    = "RRULE:FREQ=YEARLY"
	CalDatesSeparator = "/"

	// Event titles & descriptions.
	TitleBirthday   = "🎂 %s's Birthday"
	TitleFollowUp   = "Reach out to %s"
	DetailsBirthday = "Birthday reminder"
	DetailsFollowUp = "Relationship reminder.\n\nSuggested: enable a notification for this event."
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go KeepInTouch//Engine//EN"
	ICalCalName   = "Keep In Touch"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gokeepintouch"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardVersion = "4.0"
	VCardBDAY    = "BDAY"
	VCardFN      = "FN"
	VCardN       = "N"
	VCardNOTE    = "NOTE"
	VCardADR     = "ADR"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Provider wire formats: all-day events use the basic date form, timed
	// events the UTC basic date-time form.
	DateFormatAllDay   = "20060102"
	DateFormatTimedUTC = "20060102T150405Z"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	UIDSalt         = "go-keepintouch-v1-" // Salt for deterministic feed UID generation
	FormatHashInput = "%d|%s|%s"
	FormatUID       = "%s-%d@%s"
	FormatUIDDue    = "%s-due@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported import mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrVCardEncode      = "failed to encode vCard data"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrNoBirthday       = "person has no birthday set"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrOpenURL          = "failed to open URL in browser"
	ErrLocNotInit       = "localizer not initialized"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary      = "Birthday: %s"
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"
	FallbackFollowUp     = "Reach out to %s"
	FallbackTrayError    = "Keep In Touch: Error"
	FallbackTrayDefault  = "Keep In Touch (%d overdue)"
	FallbackTrayLabel    = "Keep In Touch"
	FallbackName         = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events exist.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleImportError  = "Import Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgImportStarted  = "vCard import started..."
	MsgImportFailed   = "vCard import failed. Check logs."
	MsgImportDone     = "vCard import finished"
	MsgFeedRebuilt    = "Calendar feed rebuilt"
	MsgFeedReq        = "Feed rebuild requested"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgUpdateInterval = "Updating refresh interval"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgGenSuccess     = "Calendar generation successful"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgPeopleLoaded   = "People collection loaded"
	MsgPeopleSaved    = "People collection saved"
	MsgCorruptPayload = "Stored people payload unreadable, starting empty"
	MsgPersonCreated  = "Person created"
	MsgPersonDeleted  = "Person deleted"
	MsgPersonUpdated  = "Person updated"

	PlaceholderURL    = "https://..."
	PlaceholderSearch = "Search by first or last name"
	PlaceholderName   = "Full name"
	PlaceholderDate   = "YYYY-MM-DD"
)

// -----------------------------------------------------------------------------
// Reminder Units & Directions
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyImported  = "imported"
	LogKeyOverdue   = "overdue"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyID        = "person_id"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompRepo    = "repository"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
