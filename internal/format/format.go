// Package format renders shortlists as chat-ready text. Rendering is a
// pure function of its input; terminal styling belongs to the TUI layer.
package format

import (
	"fmt"
	"strings"

	"selectly/internal/domain"
)

// Shortlist renders a ranked shortlist: a count header, one numbered block
// per supplier, and the static rationale footer. An empty shortlist
// renders a well-formed "0 suppliers" message, not an error.
func Shortlist(shortlist []domain.ScoredSupplier) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏆 **সেরা %d টি সাপ্লায়ার**\n\n", len(shortlist))
	for i, s := range shortlist {
		r := s.Supplier
		fmt.Fprintf(&b, "**%d. %s** 📍 %s\n", i+1, r[domain.FieldName], r[domain.FieldLocation])
		fmt.Fprintf(&b, "💰 Price: $%s | ⏱️ Lead: %s days\n", r[domain.FieldPrice], r[domain.FieldLeadTime])
		fmt.Fprintf(&b, "⭐ Quality: %s/10 | 📊 Reliability: %s%%\n", r[domain.FieldQuality], r[domain.FieldReliability])
		fmt.Fprintf(&b, "💼 Financial: %s/10 | 🌱 %s\n", r[domain.FieldFinancial], r[domain.FieldCompliance])
		fmt.Fprintf(&b, "🎯 Score: %.2f\n\n", s.Score)
	}
	b.WriteString("✅ **Why These Suppliers?**\n")
	b.WriteString("• Optimal price-quality balance\n")
	b.WriteString("• Fast lead time & high reliability\n")
	b.WriteString("• Strong sustainability compliance\n")
	return b.String()
}

// Welcome is the assistant message posted after a successful CSV load,
// with example questions in both trigger languages.
func Welcome(fileName string) string {
	return fmt.Sprintf(`✨ CSV ফাইল %q সফলভাবে লোড হয়েছে!

আপনি এখন প্রশ্ন করতে পারেন:
• "টপ 5 সাপ্লায়ার দেখাও"
• "কম দামে ভালো কোয়ালিটির 3 টা সাপ্লায়ার"
• "Dhaka এর সেরা সাপ্লায়ার কারা?"
• "OEKO-TEX সার্টিফাইড সাপ্লায়ার"`, fileName)
}

// Error renders a core-pipeline failure as the single labeled message the
// conversation gets; there is no retry affordance.
func Error(err error) string {
	return "❌ Error: " + err.Error()
}

// InsightLabel prefixes enrichment commentary appended to a reply.
const InsightLabel = "\n\n💡 **AI Insight:**\n"
