// Package prompt assembles the system and user prompts for each pipeline
// agent from reusable blocks: role definitions, per-platform formatting
// rules, goal and style instructions, and the brand/learning context.
package prompt

import (
	"fmt"
	"strings"

	"postsmith/internal"
)

// Role identifies one of the five pipeline agents.
type Role string

const (
	RoleStrategist    Role = "strategist"
	RoleCopywriter    Role = "copywriter"
	RoleCritic        Role = "critic"
	RoleEditor        Role = "editor"
	RoleBrandGuardian Role = "brand_guardian"
)

// Context carries everything a prompt needs for one agent call.
type Context struct {
	Topic           string
	Platform        internal.Platform
	Goal            internal.Goal
	Style           internal.Style
	Language        string
	BrandContext    string
	LearningContext string
	PreviousOutput  string
	Critique        string
	Extra           string
}

var rolePrompts = map[Role]string{
	RoleStrategist: `You are a MARKETING STRATEGIST with 15 years of experience in tech marketing.
Your role: analysis, planning, choosing the angle of attack.
You do NOT write the content - only the strategy.
Think like a strategist, not like a copywriter.`,

	RoleCopywriter: `You are a SENIOR COPYWRITER specializing in content marketing for the IT industry.
Your role: writing engaging content from the given strategy.
You write like a human, not like an AI.
Every word earns its place.`,

	RoleCritic: `You are a HARSH CRITIC of marketing content.
Your role: judging quality, detecting AI slop and cliches.
You are merciless but constructive.
You rate on a 1-10 scale with justification.`,

	RoleEditor: `You are an EDITOR experienced in social media.
Your role: tightening, improving flow, strengthening the CTA.
You cut filler words without mercy.
Every sentence must work.`,

	RoleBrandGuardian: `You are the BRAND GUARDIAN.
Your role: checking compliance with the brand's tone of voice and rules.
You detect brand guideline violations.
You return concrete problems to fix.`,
}

var platformRules = map[internal.Platform]string{
	internal.PlatformLinkedIn: `=== LINKEDIN RULES ===
FORMAT:
- First line = HOOK (grab attention in 2 seconds)
- Short paragraphs (1-2 sentences)
- Blank line between paragraphs
- 2-4 emojis placed strategically
- CTA at the end (question or comment prompt)

STYLE:
- Storytelling over dry facts
- Professional but human and warm
- Concrete numbers and examples
- No corporate jargon

LENGTH: 1200-1800 characters
HASHTAGS: 3-5 at the end`,

	internal.PlatformTwitter: `=== TWITTER/X RULES ===
FORMAT:
- One thought = one tweet
- Punchy, contrarian, or ultra-specific
- No preamble, straight to the point

STYLE:
- Hot take over lukewarm opinion
- Numbers and specifics work
- Rhetorical questions engage

LENGTH: max 280 characters
EMOJI: 1-2
HASHTAGS: max 2`,

	internal.PlatformFacebook: `=== FACEBOOK RULES ===
FORMAT:
- Hook with an emoji up front
- A story or personal anecdote
- End with a question for discussion

STYLE:
- Conversational, friendly, warm
- Emotional over rational
- Personal stories work best

LENGTH: 500-1500 characters
EMOJI: 4-6
HASHTAGS: 0-2`,

	internal.PlatformInstagram: `=== INSTAGRAM RULES ===
FORMAT:
- First line visible without expanding - it must pull
- Emoji in the first line
- Bullet points with emojis are fine
- Hashtags at the end

STYLE:
- Visual language
- Inspirational or educational
- Micro-storytelling, authenticity over polish

LENGTH: 500-2200 characters
EMOJI: 5-10
HASHTAGS: 5-15 relevant ones`,

	internal.PlatformThreads: `=== THREADS RULES ===
FORMAT:
- Like Twitter but longer, a series of connected thoughts
- Conversational tone, emojis woven in naturally

STYLE:
- Casual, like writing to friends
- Opinions and hot takes
- Less "marketing" than other platforms

LENGTH: up to 500 characters
EMOJI: 2-4
HASHTAGS: 0-3`,
}

var goalInstructions = map[internal.Goal]string{
	internal.GoalEngagement: `GOAL: MAXIMUM ENGAGEMENT
- End with a question that provokes answers
- Touch a controversial but safe topic
- Share an opinion and ask for theirs`,
	internal.GoalAuthority: `GOAL: BUILD AUTHORITY
- Show expertise with concrete examples
- Reference real experience and numbers
- Teach something non-obvious`,
	internal.GoalViral: `GOAL: MAXIMUM REACH
- Strong emotional hook
- A surprising or contrarian claim
- Easy to share, easy to quote`,
	internal.GoalConversion: `GOAL: CONVERSION
- A clear single call to action
- Address one concrete pain point
- Make the next step obvious`,
	internal.GoalEducation: `GOAL: EDUCATION
- One clear lesson per post
- Step-by-step or list structure
- Practical, immediately applicable`,
	internal.GoalStorytelling: `GOAL: STORYTELLING
- A real narrative arc: setup, tension, resolution
- A person the reader can identify with
- The lesson emerges, it is not announced`,
}

var styleInstructions = map[internal.Style]string{
	internal.StyleProfessional:  "STYLE: professional - competent, measured, precise.",
	internal.StyleCasual:        "STYLE: casual - loose, direct, like talking to a colleague.",
	internal.StyleControversial: "STYLE: controversial - take a defensible but polarizing stance.",
	internal.StyleInspirational: "STYLE: inspirational - uplifting without being saccharine.",
	internal.StyleAnalytical:    "STYLE: analytical - data first, conclusions second.",
	internal.StyleHumorous:      "STYLE: humorous - light, witty, never at the reader's expense.",
}

// antiGenericFilter is appended to writing prompts to suppress AI cliches.
const antiGenericFilter = `ABSOLUTELY AVOID:
- Openers like "In today's world" or "In the era of"
- Generic claims that could be in any post
- Corporate buzzwords
- Announcing what you are about to say instead of saying it`

// BuildSystem returns the system prompt for an agent call.
func BuildSystem(role Role, ctx Context) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(rolePrompts[role]))
	sb.WriteString("\n\n")

	if ctx.BrandContext != "" {
		sb.WriteString(ctx.BrandContext)
		sb.WriteString("\n")
	}
	if rules, ok := platformRules[ctx.Platform]; ok {
		sb.WriteString(rules)
		sb.WriteString("\n")
	}
	if ctx.Language != "" {
		fmt.Fprintf(&sb, "\nWrite all output in %s.\n", ctx.Language)
	}
	if role == RoleCopywriter || role == RoleEditor {
		sb.WriteString("\n")
		sb.WriteString(antiGenericFilter)
		sb.WriteString("\n")
		if ctx.LearningContext != "" {
			sb.WriteString("\n")
			sb.WriteString(ctx.LearningContext)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// BuildUser returns the user prompt for an agent call. PreviousOutput and
// Critique feed the downstream stages.
func BuildUser(role Role, ctx Context) string {
	var sb strings.Builder

	switch role {
	case RoleStrategist:
		fmt.Fprintf(&sb, "Topic: %s\n\n", ctx.Topic)
		if instr, ok := goalInstructions[ctx.Goal]; ok {
			sb.WriteString(instr)
			sb.WriteString("\n\n")
		}
		sb.WriteString(`Produce a short content brief:
1. The angle (one sentence)
2. Target reader and their pain point
3. Key message
4. Hook idea
5. CTA idea
Do not write the post itself.`)

	case RoleCopywriter:
		fmt.Fprintf(&sb, "Topic: %s\n\n", ctx.Topic)
		if ctx.PreviousOutput != "" {
			fmt.Fprintf(&sb, "STRATEGY BRIEF:\n%s\n\n", ctx.PreviousOutput)
		}
		if instr, ok := styleInstructions[ctx.Style]; ok {
			sb.WriteString(instr)
			sb.WriteString("\n\n")
		}
		sb.WriteString("Write the complete post now. Output ONLY the post text, no commentary.")

	case RoleCritic:
		fmt.Fprintf(&sb, "Judge this %s post draft:\n\n%s\n\n", ctx.Platform, ctx.PreviousOutput)
		sb.WriteString(`Answer in this exact format:
SCORE: <n>/10
ISSUES:
- [major|minor] <issue>
- [major|minor] <issue>
Keep issues concrete and actionable. If the post is good, say so and list no issues.`)

	case RoleEditor:
		fmt.Fprintf(&sb, "CURRENT DRAFT:\n%s\n\n", ctx.PreviousOutput)
		if ctx.Critique != "" {
			fmt.Fprintf(&sb, "CRITIQUE TO ADDRESS:\n%s\n\n", ctx.Critique)
		}
		if ctx.Extra != "" {
			fmt.Fprintf(&sb, "ADDITIONAL INSTRUCTIONS:\n%s\n\n", ctx.Extra)
		}
		sb.WriteString("Rewrite the draft addressing every issue. Output ONLY the revised post text.")

	case RoleBrandGuardian:
		fmt.Fprintf(&sb, "Check this final %s post against the brand identity above:\n\n%s\n\n", ctx.Platform, ctx.PreviousOutput)
		sb.WriteString(`Answer with either:
COMPLIANT - when the post follows the brand rules
or
VIOLATIONS:
- <concrete problem>
Name every forbidden word used and every tone mismatch.`)
	}

	return sb.String()
}
