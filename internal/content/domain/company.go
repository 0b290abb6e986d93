package domain

// CompanyInfo is the static company profile rendered in the hero, about and
// footer sections.
type CompanyInfo struct {
	Name        string `json:"name"`
	RegNo       string `json:"regNo"`
	Established int    `json:"established"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
}

type MissionVision struct {
	Mission string `json:"mission"`
	Vision  string `json:"vision"`
}

var Company = CompanyInfo{
	Name:        "S.R.B Engineering & Construction Pvt. Ltd.",
	RegNo:       "191448/74/075",
	Established: 2018,
	Address:     "KA. MA. PA-16, Kathmandu",
	Phone:       "+977 9843919796",
	Email:       "info@srbeng.com",
	Tagline:     "Design & Build Solutions Since 2018",
	Description: "S.R.B Engineering & Construction Pvt. Ltd. is a dynamic company, established in 2018, specializes in delivering end-to-end construction solutions. We combine innovative design, engineering expertise, and quality craftsmanship to bring our clients’ visions to life.\n In addition to turnkey construction services, we also provide comprehensive engineering consulting services, offering technical guidance, feasibility assessments, detailed engineering design, project management support, and sustainable infrastructure solutions tailored to client needs.",
}

var Mission = MissionVision{
	Mission: "Our mission is to provide end-to-end construction and engineering consulting services that combine creativity, technical excellence, and reliable project execution. We are committed to: \n •Delivering high-quality, sustainable, and cost-effective solutions.\n •Leveraging innovation and engineering expertise to meet evolving client needs.\n •Ensuring transparency, safety, and professionalism in all our projects.\n •Building long-term relationships through trust, integrity, and exceptional service.",
	Vision:  "To become a trusted leader in sustainable design, engineering, and construction by delivering innovative, efficient, and resilient infrastructure that enhances communities and shapes a better future.",
}
