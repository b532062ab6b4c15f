package content

// Page names with editable content. The order here is the order the admin
// dashboard lists them in.
var pageNames = []string{"home", "about", "specialisms", "jobs", "employers", "candidates"}

// Pages returns the names of all pages that carry editable content.
func Pages() []string {
	out := make([]string, len(pageNames))
	copy(out, pageNames)
	return out
}

// Known reports whether the given page name has a defaults table.
func Known(page string) bool {
	_, ok := defaultsTable[page]
	return ok
}

// Defaults returns the hand-authored fallback content for a page, or nil if
// the page is unknown. The returned tree is a deep copy; callers own it.
func Defaults(page string) Node {
	d, ok := defaultsTable[page]
	if !ok {
		return nil
	}
	return deepCopy(d)
}

// defaultsTable is the authoritative shape of each page's content. It is both
// the fallback when no row has been saved and the schema persisted rows are
// reconciled against. Never mutated at runtime.
var defaultsTable = map[string]Node{
	"home": {
		"hero": Node{
			"title":    "Life Sciences, Biometrics & Data Recruitment Specialists",
			"subtitle": "Connecting exceptional talent with pioneering life sciences organisations across the UK, Europe and the US.",
			"ctaLabel": "Find your next role",
			"ctaLink":  "/jobs",
		},
		"intro": Node{
			"heading": "Recruitment built on scientific understanding",
			"body":    "We place biostatisticians, statistical programmers, data managers and clinical data scientists with biotechs, CROs and global pharmaceutical companies. Our consultants come from the industry they recruit for.",
		},
		"stats": Node{
			"items": []any{
				Node{"value": "15+", "label": "Years in life sciences recruitment"},
				Node{"value": "900+", "label": "Placements made"},
				Node{"value": "96%", "label": "Of placements pass probation"},
			},
		},
		"specialisms": Node{
			"heading": "Our specialisms",
			"items": []any{
				Node{"title": "Biostatistics", "description": "Statisticians for clinical development, from study design through regulatory submission."},
				Node{"title": "Statistical Programming", "description": "SAS and R programmers supporting trials at every phase."},
				Node{"title": "Clinical Data Management", "description": "Data managers who keep trials clean, compliant and on schedule."},
				Node{"title": "Real World Evidence", "description": "Epidemiologists and data scientists turning real-world data into insight."},
			},
		},
		"testimonials": Node{
			"heading": "What our clients say",
			"items": []any{
				Node{"quote": "They understood the brief in one call and sent three interviewable candidates within a week.", "author": "VP Biometrics, mid-size CRO"},
				Node{"quote": "The only agency we use for statistical programming roles.", "author": "Head of Data Science, global pharma"},
			},
		},
		"faq": Node{
			"heading": "Frequently asked questions",
			"items": []any{
				Node{"question": "Which regions do you cover?", "answer": "We place candidates across the UK, mainland Europe and the United States, both on-site and fully remote."},
				Node{"question": "Do you handle contract as well as permanent roles?", "answer": "Yes. Roughly half of our placements are contract or fixed-term, including freelance statistical programmers."},
				Node{"question": "Is there a cost to candidates?", "answer": "No. Our fees are always paid by the hiring organisation."},
				Node{"question": "How quickly can you send a shortlist?", "answer": "For most biometrics roles we deliver a qualified shortlist within five working days of the brief."},
				Node{"question": "Do you recruit outside of life sciences?", "answer": "No. We deliberately specialise in biometrics, data and adjacent life sciences functions."},
				Node{"question": "What seniority levels do you work with?", "answer": "Everything from entry-level statistical programmers through to VP Biometrics and Chief Data Officers."},
			},
		},
		"cta": Node{
			"heading":  "Hiring, or looking for your next role?",
			"body":     "Tell us what you need and a specialist consultant will come back to you within one working day.",
			"ctaLabel": "Get in touch",
			"ctaLink":  "/employers",
		},
	},
	"about": {
		"hero": Node{
			"title":    "About us",
			"subtitle": "A specialist consultancy founded by people who worked in the roles they now recruit for.",
		},
		"story": Node{
			"heading": "Our story",
			"body":    "Founded in 2009 by a former statistical programmer and a clinical data manager, we set out to build the agency we wished existed when we were candidates: honest, technical, and never transactional.",
		},
		"values": Node{
			"heading": "What we stand for",
			"items": []any{
				Node{"title": "Technical fluency", "description": "Our consultants can read a SAP and know the difference between CDISC SDTM and ADaM."},
				Node{"title": "Straight answers", "description": "If a role or a candidate is not right, we say so early."},
				Node{"title": "Long-term relationships", "description": "Many of today's hiring managers are candidates we placed a decade ago."},
			},
		},
		"team": Node{
			"heading": "Meet the team",
			"items": []any{
				Node{"name": "James Whitfield", "role": "Director", "bio": "Former SAS programmer with 12 years in clinical trials before moving into recruitment."},
				Node{"name": "Priya Nair", "role": "Principal Consultant, Biostatistics", "bio": "MSc Medical Statistics; recruits statisticians across early and late phase."},
				Node{"name": "Tom Okafor", "role": "Consultant, Data Management", "bio": "Places clinical data managers and database programmers across Europe."},
			},
		},
	},
	"specialisms": {
		"hero": Node{
			"title":    "Our specialisms",
			"subtitle": "Deep, narrow expertise across biometrics and data functions.",
		},
		"sections": Node{
			"items": []any{
				Node{"title": "Biostatistics", "description": "From study statisticians to heads of biostatistics, covering adaptive designs, Bayesian methods and regulatory interactions."},
				Node{"title": "Statistical Programming", "description": "SAS, R and Python programmers producing TFLs, CDISC datasets and submission packages."},
				Node{"title": "Clinical Data Management", "description": "CDMs, database programmers and data standards specialists across EDC platforms."},
				Node{"title": "Real World Evidence & Epidemiology", "description": "Observational research, HEOR and late-phase analytics roles."},
				Node{"title": "Data Science & AI", "description": "Machine learning engineers and data scientists applied to drug discovery and clinical development."},
			},
		},
		"cta": Node{
			"heading":  "Looking for talent in one of these areas?",
			"ctaLabel": "Speak to a consultant",
			"ctaLink":  "/employers",
		},
	},
	"jobs": {
		"hero": Node{
			"title":    "Current opportunities",
			"subtitle": "Live roles across biostatistics, programming, data management and data science.",
		},
		"empty": Node{
			"message": "No live roles match right now. Register your CV and we will contact you when something suitable opens.",
		},
	},
	"employers": {
		"hero": Node{
			"title":    "For employers",
			"subtitle": "Build your biometrics and data teams with a partner who speaks the language.",
		},
		"process": Node{
			"heading": "How we work",
			"items": []any{
				Node{"step": "1", "title": "Brief", "description": "A technical conversation about the role, the team and the science."},
				Node{"step": "2", "title": "Shortlist", "description": "Three to five qualified, interested candidates, usually within five working days."},
				Node{"step": "3", "title": "Offer & onboarding", "description": "We manage the offer, notice period and counter-offer risk through to start date."},
			},
		},
		"form": Node{
			"heading": "Tell us about your hiring need",
			"body":    "Complete the form and a specialist consultant will respond within one working day.",
		},
	},
	"candidates": {
		"hero": Node{
			"title":    "For candidates",
			"subtitle": "Confidential, technically informed career advice for biometrics and data professionals.",
		},
		"benefits": Node{
			"heading": "Why register with us",
			"items": []any{
				Node{"title": "Confidentiality first", "description": "Your CV is never sent anywhere without your explicit say-so."},
				Node{"title": "Market insight", "description": "Honest advice on salary, demand and where your skills travel best."},
				Node{"title": "Interview preparation", "description": "Role-specific prep with consultants who have sat on both sides of the table."},
			},
		},
		"salaryGuide": Node{
			"heading":  "Salary guide",
			"body":     "Download our annual salary guide for biometrics and data roles across the UK, Europe and the US.",
			"ctaLabel": "Download the guide",
		},
		"form": Node{
			"heading": "Register your CV",
			"body":    "Upload your CV and tell us what you are looking for. A consultant will be in touch.",
		},
	},
}
