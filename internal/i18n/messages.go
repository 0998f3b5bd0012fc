package i18n

import (
	"fmt"
	"strconv"
)

// Messages is the full set of UI strings for one language.
type Messages struct {
	LogoAlt     string
	Title       string
	Subtitle    string
	InputLabel  string
	Placeholder string
	AriaInput   string
	LoaderLine  string

	CheckNow        string
	Checking        string
	CheckBtnAria    string
	ComposeNewsBtn  string
	ComposeTweetBtn string
	ComposingNews   string
	ComposingTweet  string
	CopyResult      string
	CopyAria        string
	Copied          string
	LanguageToggle  string
	LanguageAria    string

	Status         string
	Analysis       string
	Sources        string
	None           string
	NoSources      string
	GeneratedNews  string
	TweetHeading   string
	TweetCardTitle string

	DefaultCase string
	DefaultTalk string

	ErrorNoQuery         string
	ErrorFetch           string
	ErrorUnexpected      string
	ErrorEmptyResponse   string
	ErrorInvalidResponse string
	ErrorInFlight        string
	ErrorNoResult        string
	ErrorUnavailable     string
	ErrorRateLimited     string
	ErrorTooLong         string

	StatsTitle      string
	Supporting      string
	Opposing        string
	Neutral         string
	TotalSources    string
	SourceSingular  string
	SourcePlural    string
	OverallAnalysis string

	ReviewTitle       string
	ReviewTextLabel   string
	ReviewURLLabel    string
	ReviewSubmit      string
	ReviewHeading     string
	ErrorFetchArticle string
}

// SourceCount formats n with the singular or plural noun, e.g. "1 source".
func (m *Messages) SourceCount(n int) string {
	noun := m.SourcePlural
	if n == 1 {
		noun = m.SourceSingular
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// FormatPercent renders a percentage with one decimal place, e.g. "66.7%".
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

var arabic = Messages{
	LogoAlt:     "شعار الجامعة",
	Title:       "التحقق من الأخبار",
	Subtitle:    "تحقق من صحة الأخبار بالاعتماد على مصادر موثوقة",
	InputLabel:  "اكتب عنوان الخبر المراد التحقق منه",
	Placeholder: "مثال: الرئيس الأمريكي أعلن عن قرار جديد...",
	AriaInput:   "مربع إدخال النص للتحقق من الخبر",
	LoaderLine:  "محرك الذكاء الاصطناعي يعمل… تجميع الأدلة، مطابقة الحقائق، وتكوين الحكم.",

	CheckNow:        "تحقق الآن",
	Checking:        "جاري التحقق…",
	CheckBtnAria:    "زر التحقق من الخبر",
	ComposeNewsBtn:  "صياغة خبر",
	ComposeTweetBtn: "صياغة تغريدة",
	ComposingNews:   "جاري صياغة الخبر…",
	ComposingTweet:  "جاري صياغة التغريدة…",
	CopyResult:      "نسخ النتيجة",
	CopyAria:        "نسخ نتيجة التحقق",
	Copied:          "تم النسخ!",
	LanguageToggle:  "English",
	LanguageAria:    "اختيار اللغة",

	Status:         "الحالة",
	Analysis:       "التحليل",
	Sources:        "المصادر",
	None:           "لا يوجد",
	NoSources:      "لا توجد مصادر متاحة.",
	GeneratedNews:  "خبر مصاغ",
	TweetHeading:   "تغريدة مصاغة",
	TweetCardTitle: "متحقق من الأخبار",

	DefaultCase: "غير متوفر",
	DefaultTalk: "لا يوجد تفسير.",

	ErrorNoQuery:         "اكتب الخبر أولًا.",
	ErrorFetch:           "تعذر الحصول على النتيجة",
	ErrorUnexpected:      "حدث خطأ غير متوقع.",
	ErrorEmptyResponse:   "أعاد الخادم استجابة فارغة",
	ErrorInvalidResponse: "استجابة غير صالحة من الخادم",
	ErrorInFlight:        "الطلب قيد التنفيذ بالفعل، يرجى الانتظار.",
	ErrorNoResult:        "تحقق من الخبر أولًا.",
	ErrorUnavailable:     "خدمة التحقق غير متاحة مؤقتًا، حاول لاحقًا.",
	ErrorRateLimited:     "طلبات كثيرة جدًا، حاول بعد قليل.",
	ErrorTooLong:         "النص طويل جدًا.",

	StatsTitle:      "إحصائيات المصادر",
	Supporting:      "مؤيدة",
	Opposing:        "معارضة",
	Neutral:         "محايدة",
	TotalSources:    "إجمالي المصادر",
	SourceSingular:  "مصدر",
	SourcePlural:    "مصادر",
	OverallAnalysis: "التحليل الإجمالي:",

	ReviewTitle:       "مراجعة مقال",
	ReviewTextLabel:   "نص المقال",
	ReviewURLLabel:    "أو رابط المقال",
	ReviewSubmit:      "راجع المقال",
	ReviewHeading:     "المراجعة",
	ErrorFetchArticle: "تعذر جلب المقال من الرابط.",
}

var english = Messages{
	LogoAlt:     "University Logo",
	Title:       "Fact Checker",
	Subtitle:    "Verify news against trusted sources",
	InputLabel:  "Enter the news headline to fact-check",
	Placeholder: "Example: The US President announced a new decision...",
	AriaInput:   "Text input for fact-checking",
	LoaderLine:  "AI engine is working… gathering evidence, matching facts, and forming the verdict.",

	CheckNow:        "Check Now",
	Checking:        "Checking...",
	CheckBtnAria:    "Fact check button",
	ComposeNewsBtn:  "Compose News",
	ComposeTweetBtn: "Compose Tweet",
	ComposingNews:   "Composing news…",
	ComposingTweet:  "Composing tweet…",
	CopyResult:      "Copy Result",
	CopyAria:        "Copy verification result",
	Copied:          "Copied!",
	LanguageToggle:  "العربية",
	LanguageAria:    "Language selector",

	Status:         "Status",
	Analysis:       "Analysis",
	Sources:        "Sources",
	None:           "None",
	NoSources:      "No sources available.",
	GeneratedNews:  "Generated News Article",
	TweetHeading:   "Generated Tweet",
	TweetCardTitle: "Fact Checker",

	DefaultCase: "Unavailable",
	DefaultTalk: "No explanation provided.",

	ErrorNoQuery:         "Please enter the news first.",
	ErrorFetch:           "Failed to get result",
	ErrorUnexpected:      "An unexpected error occurred.",
	ErrorEmptyResponse:   "Server returned empty response",
	ErrorInvalidResponse: "Invalid JSON response from server",
	ErrorInFlight:        "A request is already in progress, please wait.",
	ErrorNoResult:        "Check a claim first.",
	ErrorUnavailable:     "The fact-check service is temporarily unavailable, try again later.",
	ErrorRateLimited:     "Too many requests, try again shortly.",
	ErrorTooLong:         "The text is too long.",

	StatsTitle:      "Source Statistics",
	Supporting:      "Supporting",
	Opposing:        "Opposing",
	Neutral:         "Neutral",
	TotalSources:    "Total Sources",
	SourceSingular:  "source",
	SourcePlural:    "sources",
	OverallAnalysis: "Overall Analysis:",

	ReviewTitle:       "Review an article",
	ReviewTextLabel:   "Article text",
	ReviewURLLabel:    "or article URL",
	ReviewSubmit:      "Review",
	ReviewHeading:     "Review",
	ErrorFetchArticle: "Could not fetch the article from the URL.",
}
