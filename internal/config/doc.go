// Package config provides configuration loading for EventConnect.
//
// Configuration lives in eventconnect.json, found by walking up from the
// working directory. Every field is optional; missing values take
// defaults. After the file, a .env file next to it is loaded and
// EVENTCONNECT_* environment variables override individual values.
// The result is validated before use.
//
// # Configuration File Structure
//
//	{
//	  "locale": "en",
//	  "user": {"id": "1", "name": "John Doe", "initials": "JD"},
//	  "postDialog": "hashtags",
//	  "upload": {"maxImageBytes": 10485760, "allowedTypes": ["image/png", "image/jpeg"]},
//	  "countdown": {"interval": "1m"},
//	  "log": {"level": "info"},
//	  "metrics": {"addr": "localhost:9464"},
//	  "layout": {"narrowWidth": 1024}
//	}
//
// # Environment
//
//	EVENTCONNECT_LOCALE, EVENTCONNECT_USER_ID, EVENTCONNECT_USER_NAME,
//	EVENTCONNECT_USER_INITIALS, EVENTCONNECT_POST_DIALOG,
//	EVENTCONNECT_UPLOAD_MAX_IMAGE_BYTES, EVENTCONNECT_COUNTDOWN_INTERVAL,
//	EVENTCONNECT_LOG_LEVEL, EVENTCONNECT_METRICS_ADDR,
//	EVENTCONNECT_NARROW_WIDTH
//
// # Usage
//
//	cfg, err := config.Resolve(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Locale:", cfg.Locale)
package config
