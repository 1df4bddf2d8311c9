package slack

// NewWithAPI builds a service with an injected API client, for tests
func NewWithAPI(a api, channelID string) Service {
	return &client{api: a, channelID: channelID}
}
