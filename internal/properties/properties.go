package properties

import "os"

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

func StatsBackendUrl() string {
	url := os.Getenv("STATS_BACKEND_URL")
	if url == "" {
		return "http://localhost:8787"
	}
	return url
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordWarnNotificationUrl() string {
	return os.Getenv("DISCORD_WARN_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
