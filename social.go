package brandscan

import (
	"net/url"
	"strings"
)

// SocialPlatform identifies a known social network.
type SocialPlatform string

const (
	SocialInstagram SocialPlatform = "instagram"
	SocialFacebook  SocialPlatform = "facebook"
	SocialTikTok    SocialPlatform = "tiktok"
	SocialYouTube   SocialPlatform = "youtube"
	SocialTwitter   SocialPlatform = "twitter"
	SocialPinterest SocialPlatform = "pinterest"
	SocialLinkedIn  SocialPlatform = "linkedin"
)

// SocialPlatforms returns all known platforms in match order.
func SocialPlatforms() []SocialPlatform {
	return []SocialPlatform{
		SocialInstagram,
		SocialFacebook,
		SocialTikTok,
		SocialYouTube,
		SocialTwitter,
		SocialPinterest,
		SocialLinkedIn,
	}
}

var socialDomains = map[SocialPlatform]string{
	SocialInstagram: "instagram.com",
	SocialFacebook:  "facebook.com",
	SocialTikTok:    "tiktok.com",
	SocialYouTube:   "youtube.com",
	SocialTwitter:   "twitter.com",
	SocialPinterest: "pinterest.com",
	SocialLinkedIn:  "linkedin.com",
}

// SocialLink is a link to a brand profile on a known platform.
type SocialLink struct {
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url"`
}

// MatchSocialPlatform reports the platform an href points at, if any.
// Matching is a case-insensitive substring test against the known
// platform domains, checked in SocialPlatforms order.
func MatchSocialPlatform(href string) (SocialPlatform, bool) {
	h := strings.ToLower(href)
	for _, p := range SocialPlatforms() {
		if strings.Contains(h, socialDomains[p]) {
			return p, true
		}
	}
	return "", false
}

// SocialHandle extracts the handle or profile path from a social URL:
// "https://instagram.com/acme?hl=en" yields "acme",
// "https://youtube.com/channel/UCx" yields "channel/UCx". Returns the
// original string when it cannot be parsed, and "" when the URL has no
// path.
func SocialHandle(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	handle := strings.Trim(u.Path, "/")
	return strings.TrimPrefix(handle, "@")
}
