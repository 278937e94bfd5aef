package intent

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	debuglog "github.com/pautahq/pauta/internal/log"
)

// Platforms a format can target.
const (
	PlatformInstagram  = "instagram"
	PlatformLinkedIn   = "linkedin"
	PlatformTwitter    = "twitter"
	PlatformYouTube    = "youtube"
	PlatformNewsletter = "newsletter"
	PlatformBlog       = "blog"
)

// Format keys.
const (
	FormatCarousel      = "carousel"
	FormatReels         = "reels"
	FormatStories       = "stories"
	FormatLinkedInPost  = "linkedin_post"
	FormatThread        = "thread"
	FormatTweet         = "tweet"
	FormatYouTubeScript = "youtube_script"
	FormatNewsletter    = "newsletter"
	FormatBlogPost      = "blog_post"
	FormatCaption       = "caption"
	FormatPost          = "post"
)

// minFormatInput keeps short replies such as "ok" from matching anything.
const minFormatInput = 3

type formatRule struct {
	re     *regexp.Regexp
	option FormatOption
}

// formatRules is evaluated top to bottom and the first hit wins. Specific
// platforms sit above the generic "post" rule, which would otherwise swallow
// them, and carousel sits first so a carousel is never reclassified by a
// platform name in the same sentence.
var formatRules = []formatRule{
	{
		re:     regexp.MustCompile(`carross(?:[eé]l|[eé]is)|carousels?`),
		option: FormatOption{Key: FormatCarousel, Label: "Carrossel", Platform: PlatformInstagram},
	},
	{
		re:     regexp.MustCompile(`\breels?\b|v[ií]deo curto|v[ií]deos curtos`),
		option: FormatOption{Key: FormatReels, Label: "Roteiro de Reels", Platform: PlatformInstagram},
	},
	{
		re:     regexp.MustCompile(`\bstor(?:y|ys|ies)\b`),
		option: FormatOption{Key: FormatStories, Label: "Sequência de Stories", Platform: PlatformInstagram},
	},
	{
		re:     regexp.MustCompile(`linked\s?in`),
		option: FormatOption{Key: FormatLinkedInPost, Label: "Post para LinkedIn", Platform: PlatformLinkedIn},
	},
	{
		re:     regexp.MustCompile(`\bthreads?\b|\bfio\s+(?:no|pro|para o)\s+(?:twitter|x)\b`),
		option: FormatOption{Key: FormatThread, Label: "Thread", Platform: PlatformTwitter},
	},
	{
		re:     regexp.MustCompile(`\btweets?\b|\btwitter\b|\btu[ií]tes?\b|\bpost(?:ar|agem)?\s+(?:no|pro|para o)\s+x\b`),
		option: FormatOption{Key: FormatTweet, Label: "Tweet", Platform: PlatformTwitter},
	},
	{
		re:     regexp.MustCompile(`you\s?tube|\broteiro\s+(?:de|para)\s+v[ií]deo`),
		option: FormatOption{Key: FormatYouTubeScript, Label: "Roteiro para YouTube", Platform: PlatformYouTube},
	},
	{
		re:     regexp.MustCompile(`newsletter|\be-?mail\s+marketing\b|\bbeehiiv\b`),
		option: FormatOption{Key: FormatNewsletter, Label: "Newsletter", Platform: PlatformNewsletter},
	},
	{
		re:     regexp.MustCompile(`\bblog\b|\bartigos?\b`),
		option: FormatOption{Key: FormatBlogPost, Label: "Artigo de Blog", Platform: PlatformBlog},
	},
	{
		re:     regexp.MustCompile(`\blegendas?\b|\bcaptions?\b`),
		option: FormatOption{Key: FormatCaption, Label: "Legenda", Platform: PlatformInstagram},
	},
	{
		re:     regexp.MustCompile(`\bposts?\b|\bpostagens?\b|\bpublica[cç](?:[aã]o|[oõ]es)|\binstagram\b|\binsta\b`),
		option: FormatOption{Key: FormatPost, Label: "Post para Instagram", Platform: PlatformInstagram},
	},
}

// DetectFormat returns the format the text asks for, or nil.
func DetectFormat(text string) *DetectedFormat {
	trimmed := strings.TrimSpace(text)
	if runeLen(trimmed) < minFormatInput {
		return nil
	}

	lowered := lower(trimmed)
	for _, rule := range formatRules {
		if !rule.re.MatchString(lowered) {
			continue
		}
		debuglog.Debug(debuglog.Trace, "format rule %q matched\n", rule.option.Key)
		return &DetectedFormat{
			FormatKey:   rule.option.Key,
			FormatLabel: rule.option.Label,
			Platform:    rule.option.Platform,
			Confidence:  ConfidenceHigh,
		}
	}
	return nil
}

// Formats returns the catalog in rule order.
func Formats() []FormatOption {
	return lo.Map(formatRules, func(rule formatRule, _ int) FormatOption {
		return rule.option
	})
}

// LookupFormat finds a catalog entry by key.
func LookupFormat(key string) (FormatOption, bool) {
	return lo.Find(Formats(), func(opt FormatOption) bool {
		return opt.Key == key
	})
}

// AlternativeFormats returns the catalog minus current. An empty or unknown
// current key yields the full catalog.
func AlternativeFormats(current string) []FormatOption {
	return lo.Filter(Formats(), func(opt FormatOption, _ int) bool {
		return opt.Key != current
	})
}
