package questions

import "fmt"

const (
	hrSystemPrompt   = "You are an HR professional preparing screening questions."
	techSystemPrompt = "You are a helpful assistant that generates technical interview questions."
)

func buildHRPrompt(n int) string {
	return fmt.Sprintf("Generate %d simple and short HR interview questions. "+
		"Each should be under 20 words. Do NOT include any introduction or explanations. "+
		"communication skills, and self-awareness. Keep them informal and beginner-friendly. "+
		"Only return the list of questions, each on a new line.", n)
}

func buildTechPrompt(domain string, n int) string {
	return fmt.Sprintf("You are a technical interviewer. Generate %d unique, non-repetitive, "+
		"theoretical interview questions related to the job domain: '%s'. "+
		"Make sure these are beginner to intermediate level and relevant for a mock interview. "+
		"Return only a numbered list of questions. Do not include any introduction, explanations, or extra text.",
		n, domain)
}
