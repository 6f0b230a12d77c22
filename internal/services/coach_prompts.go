package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/terraincognita07/fitlog/internal/models"
)

const (
	ChatContextDays   = 30
	WeeklySummaryDays = 7
	CoachHistoryLimit = 40
	MaxCoachQuestion  = 4000

	CoachNoDataSentinel   = "המשתמש עדיין לא הזין נתונים."
	AnalyzeTodayRequest   = "נתח את היום שלי ותן לי המלצות למחר."
	AnalyzeTodayNoDataMsg = "לא מצאתי נתונים להיום. אנא ודא שהזנת את הסיכום היומי שלך כדי שאוכל לתת ניתוח."
	noWeeklyMetricsText   = "לא הוזנו מדדים שבועיים."
)

// CoachSystemInstruction is sent with every chat turn.
const CoachSystemInstruction = `אתה מאמן בריאות אישי, מומחה, תומך ומעודד בשם "ג'מיני פיט". המשימה שלך היא לעזור למשתמשים להבין את הנתונים הבריאותיים שלהם, לענות על שאלותיהם ולספק להם המלצות מותאמות אישית.
תמיד תענה בעברית. תשובותיך צריכות להיות קצרות, מעשיות, ומבוססות על הנתונים שיסופקו לך.
שמור על טון חיובי ומקצועי. כאשר אתה מנתח נתונים, ציין מגמות חיוביות ועודד את המשתמש.
בכל פעם שהמשתמש שואל שאלה, יסופקו לך הנתונים העדכניים שלו. השתמש בנתונים אלו כדי לתת את התשובה הרלוונטית ביותר.`

const weeklySummaryInstruction = `אתה מאמן בריאות אישי, תומך ומעודד. המשימה שלך היא לנתח את הנתונים הבריאותיים של המשתמש מהשבוע האחרון ולספק לו סיכום קצר, תובנות והמלצות. כתוב את התשובה בעברית.`

const weeklySummaryDirective = `בהתבסס על הנתונים האלה, אנא ספק:
1.  **סיכום כללי קצר:** התייחס למגמת המשקל (אם קיימת), ולמדדים בולטים אחרים כמו צעדים או אימונים.
2.  **תובנה אחת או שתיים:** מצא קשר מעניין בין הנתונים. למשל, האם יש קשר בין הרגשה פיזית טובה לכמות צעדים גבוהה? האם הצלחה בצום קשורה לשעת שינה?
3.  **המלצה אחת קטנה ומעשית לשבוע הבא:** הצעה קונקרטית לשיפור, המבוססת על הנתונים.
4.  **סיום מעודד:** סיים במשפט חיובי ומחזק.

הקפד על טון חיובי ומקצועי. השתמש בפורמט Markdown בסיסי (כותרות עם ##, הדגשות עם **, ורשימות) כדי שהתצוגה תהיה ברורה.`

const analyzeTodayDirective = `בצע את הפעולות הבאות:
1. סכם בקצרה את היום על סמך הרישום היומי. אם חסרים נתונים ברישום, ציין זאת בעדינות.
2. ספק 2-3 המלצות קונקרטיות וקלות ליישום עבור מחר. ההמלצות צריכות להתבסס ישירות על הנתונים של היום (לדוגמה, אם צריכת החלבון הייתה נמוכה, המלץ על מאכלים עשירים בחלבון; אם שעת השינה הייתה מאוחרת, המלץ להקדים אותה).
3. סיים במשפט מעודד וחיובי.`

// BuildCoachContext serializes the user's recent records for the model.
// Empty inputs yield CoachNoDataSentinel, never an empty string.
func BuildCoachContext(metrics []models.Metric, logs []models.DailyLog) string {
	if len(metrics) == 0 && len(logs) == 0 {
		return CoachNoDataSentinel
	}

	var builder strings.Builder
	builder.WriteString("הנה נתוני המדדים השבועיים של המשתמש מהחודש האחרון:\n")
	builder.WriteString(indentedJSON(nonNilMetrics(metrics)))
	builder.WriteString("\n\nוהנה נתוני הרישומים היומיים של המשתמש מהחודש האחרון:\n")
	builder.WriteString(indentedJSON(nonNilLogs(logs)))
	return builder.String()
}

func BuildChatPrompt(context string, question string) string {
	var builder strings.Builder
	builder.WriteString("---\n")
	builder.WriteString("הקשר: נתוני בריאות של המשתמש\n")
	builder.WriteString(context)
	builder.WriteString("\n---\n")
	builder.WriteString("השאלה של המשתמש:\n")
	builder.WriteString(question)
	return builder.String()
}

// BuildAnalyzeTodayPrompt expects today's log to exist; latest may be nil.
func BuildAnalyzeTodayPrompt(todayISO string, today models.DailyLog, latest *models.Metric) string {
	latestText := noWeeklyMetricsText
	if latest != nil {
		latestText = indentedJSON(latest)
	}

	var builder strings.Builder
	builder.WriteString("---\n")
	builder.WriteString("הקשר: נתוני בריאות של המשתמש להיום (" + todayISO + ")\n")
	builder.WriteString("רישום יומי:\n")
	builder.WriteString(indentedJSON(today))
	builder.WriteString("\n\nהמדד השבועי האחרון שהוזן (לצורך הקשר כללי):\n")
	builder.WriteString(latestText)
	builder.WriteString("\n---\n")
	builder.WriteString("בקשת המשתמש: " + AnalyzeTodayRequest + "\n\n")
	builder.WriteString(analyzeTodayDirective)
	return builder.String()
}

func BuildWeeklySummaryPrompt(metrics []models.Metric, logs []models.DailyLog) string {
	var builder strings.Builder
	builder.WriteString("הנתונים מחולקים לשני סוגים: מדדים שבועיים ורישומים יומיים.\n\n")
	builder.WriteString("הנה נתוני המדדים השבועיים (שנמדדו פעם בשבוע):\n")
	builder.WriteString(indentedJSON(nonNilMetrics(metrics)))
	builder.WriteString("\n\nוהנה נתוני הרישומים היומיים מהשבוע האחרון:\n")
	builder.WriteString(indentedJSON(nonNilLogs(logs)))
	builder.WriteString("\n\n")
	builder.WriteString(weeklySummaryDirective)
	return builder.String()
}

func indentedJSON(value any) string {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return "null"
	}
	return strings.TrimRight(buffer.String(), "\n")
}

func nonNilMetrics(metrics []models.Metric) []models.Metric {
	if metrics == nil {
		return []models.Metric{}
	}
	return metrics
}

func nonNilLogs(logs []models.DailyLog) []models.DailyLog {
	if logs == nil {
		return []models.DailyLog{}
	}
	return logs
}
