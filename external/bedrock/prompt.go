package bedrock

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/fpl-advisor/internal/domain/asset"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	"github.com/valyala/bytebufferpool"
)

const topPerformerCount = 3

// BuildAnalysisPrompt renders the user prompt for one recommendation.
func BuildAnalysisPrompt(req recommendation.NarrativeRequest) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	manager := req.Manager.ManagerName
	if manager == "" {
		manager = req.Manager.TeamName
	}

	fmt.Fprintf(buf, "Analyze this Fantasy Premier League team for Gameweek %d:\n\n", req.Gameweek)

	buf.WriteString("TEAM OVERVIEW:\n")
	fmt.Fprintf(buf, "Manager: %s\n", manager)
	fmt.Fprintf(buf, "Overall Rank: %s\n", groupThousands(req.Manager.OverallRank))
	fmt.Fprintf(buf, "Overall Points: %d\n", req.Manager.OverallPoints)
	fmt.Fprintf(buf, "Team Value: £%s\n", formatMillions(req.Manager.TeamValue))
	fmt.Fprintf(buf, "Current Captain: %s\n\n", captainName(req.Squad, req.CurrentCaptainID))

	buf.WriteString("CURRENT SQUAD:\n")
	for _, pos := range []asset.Position{asset.PositionGoalkeeper, asset.PositionDefender, asset.PositionMidfielder, asset.PositionForward} {
		fmt.Fprintf(buf, "%ss: %s\n", pos.Label(), strings.Join(namesAt(req.Squad, pos), ", "))
	}

	buf.WriteString("\nTOP PERFORMERS THIS SEASON:\n")
	for _, item := range topPerformers(req.Squad, topPerformerCount) {
		fmt.Fprintf(buf, "- %s: %d pts (Form: %s)\n", item.Name, item.TotalPoints, formatForm(item.Form))
	}

	buf.WriteString("\nRECOMMENDED CHANGES:\n\n")
	fmt.Fprintf(buf, "Transfer Out: %s\n", describeTransferAsset(req.Transfer.Out))
	fmt.Fprintf(buf, "Transfer In: %s\n\n", describeTransferAsset(req.Transfer.In))
	fmt.Fprintf(buf, "Recommended Starting XI: %s\n\n", strings.Join(names(req.Lineup.Starting), ", "))
	fmt.Fprintf(buf, "Recommended Captain: %s\n\n", req.Lineup.Captain.Name)
	fmt.Fprintf(buf, "Substitutes: %s\n\n", strings.Join(names(req.Lineup.Bench), ", "))

	buf.WriteString("Please provide:\n")
	buf.WriteString("1. Brief assessment of the current team's strengths and weaknesses\n")
	buf.WriteString("2. Opinion on the recommended transfer\n")
	buf.WriteString("3. Captain pick rationale\n")
	buf.WriteString("4. One key strategic tip for the upcoming gameweek\n\n")
	buf.WriteString("Keep your response concise and actionable (under 250 words).")

	return buf.String()
}

func describeTransferAsset(item recommendation.ScoredAsset) string {
	return fmt.Sprintf("%s (£%s, Form: %s)", item.Name, formatMillions(item.Cost), formatForm(item.Form))
}

func captainName(squad []recommendation.ScoredAsset, captainID int64) string {
	for _, item := range squad {
		if item.ID == captainID && captainID > 0 {
			return item.Name
		}
	}
	return "Unknown"
}

func namesAt(squad []recommendation.ScoredAsset, pos asset.Position) []string {
	out := make([]string, 0, 5)
	for _, item := range squad {
		if item.Position == pos {
			out = append(out, item.Name)
		}
	}
	return out
}

func names(items []recommendation.ScoredAsset) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func topPerformers(squad []recommendation.ScoredAsset, n int) []recommendation.ScoredAsset {
	sorted := append([]recommendation.ScoredAsset(nil), squad...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		return sorted[i].ID < sorted[j].ID
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// formatMillions renders tenths of a million, e.g. 1012 -> "101.2m".
func formatMillions(tenths int64) string {
	return strconv.FormatFloat(float64(tenths)/10, 'f', 1, 64) + "m"
}

func formatForm(form float64) string {
	return strconv.FormatFloat(form, 'f', -1, 64)
}

func groupThousands(value int64) string {
	raw := strconv.FormatInt(value, 10)
	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign, raw = "-", raw[1:]
	}
	if len(raw) <= 3 {
		return sign + raw
	}

	var b strings.Builder
	head := len(raw) % 3
	if head > 0 {
		b.WriteString(raw[:head])
	}
	for i := head; i < len(raw); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(raw[i : i+3])
	}
	return sign + b.String()
}
