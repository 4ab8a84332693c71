package tailor

import (
	"fmt"
	"strings"
)

// AnalysisInstruction is the system instruction shared by model-backed analyzers.
const AnalysisInstruction = `You are a career assistant that tailors resumes to job descriptions.
Compare the resume with the job description and respond with a single JSON object with these fields:
"skills": array of strings, the resume skills most relevant to the job;
"summary": string, a rewritten professional summary targeting the job;
"score": number from 0 to 100, how well the resume matches the job;
"explanation": string, a short justification of the score;
"projects": array of strings, resume projects worth highlighting.
Respond with JSON only.`

// FormatAnalysisPrompt formats an analysis request for a language model.
// The resume text may be a low-quality extraction; the prompt says so.
func FormatAnalysisPrompt(req *AnalysisRequest) string {
	var sb strings.Builder
	sb.WriteString("<job_description>\n")
	sb.WriteString(strings.TrimSpace(req.JobDescription))
	sb.WriteString("\n</job_description>\n\n")
	sb.WriteString("<resume>\n")
	sb.WriteString(strings.TrimSpace(req.ResumeText))
	sb.WriteString("\n</resume>\n\n")
	sb.WriteString("The resume text was extracted heuristically from a PDF upload and may be fragmentary.")
	return sb.String()
}

// FormatAnalysis formats analysis cards for terminal display.
func FormatAnalysis(a *Analysis) string {
	if a == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Matching Score: %s%%\n", formatScore(a.Score))

	sb.WriteString("\nSkills:\n")
	for _, s := range a.Skills {
		sb.WriteString("  - " + s + "\n")
	}

	sb.WriteString("\nSummary:\n  " + a.Summary + "\n")

	if a.Explanation != "" {
		sb.WriteString("\nExplanation:\n  " + a.Explanation + "\n")
	}

	if len(a.Projects) > 0 {
		sb.WriteString("\nProjects:\n")
		for _, p := range a.Projects {
			sb.WriteString("  - " + p + "\n")
		}
	}

	return sb.String()
}

func formatScore(score float64) string {
	if score == float64(int64(score)) {
		return fmt.Sprintf("%d", int64(score))
	}
	return fmt.Sprintf("%.1f", score)
}
