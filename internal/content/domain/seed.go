package domain

func icon(s string) *string { return &s }

// seedProjects is the portfolio the site ships with. Ids are local (p1..p7).
var seedProjects = []Project{
	{
		ID:          "p1",
		Title:       "Lagankhel Commercial Complex",
		Year:        "2025-Ongoing",
		Category:    CategoryCommercial,
		Location:    "Lagankhel, Lalitpur",
		Image:       "https://images.unsplash.com/photo-1531834685032-c34bf0d84c7c?auto=format&fit=crop&q=80&w=1200",
		Description: "An ambitious ongoing commercial complex construction featuring advanced reinforced concrete structure designed for high-traffic retail and office spaces. Currently in the structural framing phase.",
	},
	{
		ID:          "p2",
		Title:       "Manbhawan Residence",
		Year:        "2022-2024",
		Category:    CategoryResidential,
		Location:    "Manbhawan, Lalitpur",
		Image:       "https://images.unsplash.com/photo-1600596542815-6ad4c7213aa5?auto=format&fit=crop&q=80&w=1200",
		Description: "A complete design and build project for a modern luxury residence. Features include a contemporary facade, energy-efficient lighting, and a rooftop garden with panoramic views.",
	},
	{
		ID:          "p3",
		Title:       "Paknajol Residence Extension",
		Year:        "2023-24",
		Category:    CategoryResidential,
		Location:    "Paknajol, Kathmandu",
		Image:       "https://images.unsplash.com/photo-1504307651254-35680f356dfd?auto=format&fit=crop&q=80&w=1200",
		Description: "Vertical extension and structural reinforcement of an existing residence. Utilized lightweight steel structures to ensure safety while adding significant living space.",
	},
	{
		ID:          "p4",
		Title:       "Sathghumti Commercial",
		Year:        "2019-2022",
		Category:    CategoryCommercial,
		Location:    "Thamel, Kathmandu",
		Image:       "https://images.unsplash.com/photo-1486325212027-8081e485255e?auto=format&fit=crop&q=80&w=1200",
		Description: "Development of a multi-story commercial building in the heart of the tourist district. Designed to maximize floor area while adhering to strict zoning regulations.",
	},
	{
		ID:          "p5",
		Title:       "Thamel Mixed-Use Complex",
		Year:        "2018-2020",
		Category:    CategoryCommercial,
		Location:    "Thamel, Kathmandu",
		Image:       "https://images.unsplash.com/photo-1577761133163-475b7dc7828f?auto=format&fit=crop&q=80&w=1200",
		Description: "Construction of a dynamic mixed-use complex combining retail on lower floors with hospitality suites above. Successfully navigated complex site logistics in a busy urban area.",
	},
	{
		ID:          "p6",
		Title:       "Kaldhara Prefab House",
		Year:        "2019",
		Category:    CategorySteelPrefab,
		Location:    "Kaldhara, Kathmandu",
		Image:       "https://images.unsplash.com/photo-1512917774080-9991f1c4c750?auto=format&fit=crop&q=80&w=1200",
		Description: "Rapid construction of a prefabricated steel structure house. This project demonstrated the speed and efficiency of modern prefab technologies for residential needs.",
	},
	{
		ID:          "p7",
		Title:       "Kamalpokhari Residence",
		Year:        "2018-2020",
		Category:    CategoryResidential,
		Location:    "Kamalpokhari, Kathmandu",
		Image:       "https://images.unsplash.com/photo-1580587771525-78b9dba3b91d?auto=format&fit=crop&q=80&w=1200",
		Description: "Complete residential construction project delivered with excellence, focusing on traditional aesthetics blended with modern structural stability.",
	},
}

var seedServices = []Service{
	{
		ID:          "s1",
		Title:       "Design & Build",
		Description: "End-to-end construction services from architectural planning to final handover, ensuring seamless execution.",
		Icon:        icon("building2"),
	},
	{
		ID:          "s2",
		Title:       "Structural Engineering",
		Description: "Expert structural analysis, design, and retrofitting to ensure safety and durability of buildings.",
		Icon:        icon("ruler"),
	},
	{
		ID:          "s3",
		Title:       "Green Energy Solutions",
		Description: "Consultancy and implementation of sustainable energy systems including solar power and energy-efficient designs.",
		Icon:        icon("zap"),
	},
	{
		ID:          "s4",
		Title:       "Water Supply Engineering",
		Description: "Design and management of water supply systems, drainage, and sanitation for residential and commercial projects.",
		Icon:        icon("droplets"),
	},
	{
		ID:          "s5",
		Title:       "Prefab & Steel Structures",
		Description: "Specialized construction of pre-engineered buildings and steel structures for rapid and robust development.",
		Icon:        icon("hard-hat"),
	},
	{
		ID:          "s6",
		Title:       "Project Estimation",
		Description: "Detailed cost estimation, valuation, and quantity surveying to maximize value for money.",
		Icon:        icon("pencil-ruler"),
	},
}

// SeedProjects returns a fresh copy of the default project collection.
func SeedProjects() []Project {
	out := make([]Project, len(seedProjects))
	copy(out, seedProjects)
	return out
}

// SeedServices returns a fresh copy of the default service collection.
func SeedServices() []Service {
	out := make([]Service, len(seedServices))
	for i, s := range seedServices {
		out[i] = s.Clone()
	}
	return out
}

// FallbackServiceTitles feeds the contact-form dropdown when no backend titles
// are available.
func FallbackServiceTitles() []string {
	titles := make([]string, 0, len(seedServices)+1)
	for _, s := range seedServices {
		titles = append(titles, s.Title)
	}
	return append(titles, "Other")
}

// Canonical ids used when restoring a backend to the published data set.
const (
	canonicalProjectPrefix = "550e8400-e29b-41d4-a716-44665544000"
	canonicalServicePrefix = "650e8400-e29b-41d4-a716-44665544000"
)

// CanonicalProjects is the restore set: the seeds under stable UUIDs.
func CanonicalProjects() []Project {
	out := SeedProjects()
	for i := range out {
		out[i].ID = canonicalProjectPrefix + string(rune('1'+i))
	}
	return out
}

// CanonicalServices is the restore set for services. It extends the seeds with
// the consulting offering.
func CanonicalServices() []Service {
	out := SeedServices()
	out = append(out, Service{
		Title:       "Engineering Consulting",
		Description: "Comprehensive engineering consulting services, offering technical guidance, feasibility assessments, detailed engineering design, project management support, and sustainable infrastructure solutions.",
		Icon:        icon("pencil-ruler"),
	})
	for i := range out {
		out[i].ID = canonicalServicePrefix + string(rune('1'+i))
	}
	return out
}
