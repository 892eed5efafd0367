package report

const sampleInsights = `### Executive Summary & Deal Estimate
- Industry & HQ: Logistics, Aarhus.
- **Estimated Employees**: 120
- **Potential Pension Volume**: 120 x 450k x 8% = 4.3M/year

### Key Decision Makers
**CEO**: Jane Doe (https://www.linkedin.com/in/janedoe)
**CFO**: John Roe
**CHRO**:

### Psychological Profile (C-Level)
- **Likely Personality**: Driver (Direct)
- **Recommended Approach**: Be brief and focus on ROI.

### The Golden Hook (Icebreaker)
CEO recently ran the Copenhagen Marathon.

### Pension & Benefits Intelligence
- **Collective Agreement vs. Independent**: Independent.
- **Current Provider Signals**: Careers page mentions Velliv.

### Pain Point Hypothesis
High administrative burden and fees.`

const sampleScript = `### Tailored Call Script (Representing Ensure)
**The "Golden Hook" Opener**: Congratulations on the marathon!
**The Bridge**: We help companies like yours avoid overpaying.

### Objection Handling (Ensure Strategy)
**Objection**: We are happy with Velliv.
**Rebuttal**: That's great, but when did you last benchmark fees?
- Keep it short.`
