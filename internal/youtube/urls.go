package youtube

// WatchURL builds the public watch page URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ChannelURL builds the public channel page URL for a channel id.
func ChannelURL(channelID string) string {
	return "https://www.youtube.com/channel/" + channelID
}
