package taxonomy

import "github.com/jonathan/richat-staffing/internal/types"

// Version identifies the revision of the built-in catalog
const Version = "2024.06"

// entry is a canonical skill with its aliases as they appear in catalogs
type entry struct {
	name    string
	aliases []string
}

// edge is a related-technology link between two canonical skills
type edge struct {
	a, b   string
	weight float64
}

// defaultCatalog is the built-in skill catalog, ordered per domain
var defaultCatalog = map[types.Domain][]entry{
	types.DomainDigital: {
		{"Python", []string{"py", "python3"}},
		{"Django", []string{"django rest framework", "drf"}},
		{"Flask", nil},
		{"JavaScript", []string{"js", "ecmascript", "es6"}},
		{"TypeScript", []string{"ts"}},
		{"React", []string{"reactjs", "react.js"}},
		{"Angular", []string{"angularjs", "angular.js"}},
		{"Vue.js", []string{"vue", "vuejs"}},
		{"Node.js", []string{"nodejs", "node"}},
		{"HTML", nil},
		{"HTML5", nil},
		{"CSS", []string{"css3"}},
		{"PHP", nil},
		{"Laravel", nil},
		{"Symfony", nil},
		{"Java", []string{"j2ee", "java ee"}},
		{"Spring Boot", []string{"spring"}},
		{"C#", []string{"csharp"}},
		{".NET", []string{"dotnet", "asp.net"}},
		{"Golang", []string{"go lang"}},
		{"SQL", nil},
		{"MySQL", []string{"mariadb"}},
		{"PostgreSQL", []string{"postgres", "postgre"}},
		{"MongoDB", []string{"mongo"}},
		{"Oracle Database", []string{"oracle", "oracle db", "pl/sql"}},
		{"Docker", nil},
		{"Kubernetes", []string{"k8s"}},
		{"AWS", []string{"amazon web services", "amazon aws"}},
		{"Microsoft Azure", []string{"azure"}},
		{"Google Cloud", []string{"gcp", "google cloud platform"}},
		{"Git", []string{"github", "gitlab"}},
		{"Linux", []string{"ubuntu", "unix", "debian", "centos"}},
		{"DevOps", nil},
		{"CI/CD", []string{"cicd", "continuous integration", "intégration continue"}},
		{"Machine Learning", []string{"ml", "apprentissage automatique"}},
		{"Intelligence Artificielle", []string{"ia", "ai", "artificial intelligence"}},
		{"Data Science", []string{"science des données", "data scientist"}},
		{"Data Analysis", []string{"analyse de données", "data analytics"}},
		{"Power BI", []string{"powerbi"}},
		{"Cybersécurité", []string{"cybersecurity", "cyber security", "sécurité informatique"}},
		{"Réseaux informatiques", []string{"network administration", "administration réseau", "cisco", "ccna"}},
		{"Agile", []string{"méthodes agiles", "agilité"}},
		{"Scrum", []string{"scrum master"}},
		{"REST API", []string{"restful", "api rest"}},
		{"Gestion de projet", []string{"project management", "gestion de projets", "pmp"}},
		{"Transformation digitale", []string{"digital transformation", "transformation numérique"}},
		{"ERP", []string{"progiciel de gestion intégré"}},
		{"SAP", []string{"sap erp"}},
	},
	types.DomainFinance: {
		{"Comptabilité", []string{"accounting", "comptabilité générale"}},
		{"Audit", []string{"audit financier", "audit interne", "auditing"}},
		{"Finance d'entreprise", []string{"corporate finance"}},
		{"Contrôle de gestion", []string{"management control", "controlling"}},
		{"Analyse financière", []string{"financial analysis"}},
		{"Fiscalité", []string{"tax", "taxation"}},
		{"IFRS", []string{"normes ifrs"}},
		{"Trésorerie", []string{"treasury", "cash management"}},
		{"Gestion des risques", []string{"risk management", "gestion du risque"}},
		{"Microfinance", []string{"microcrédit"}},
		{"Banque", []string{"banking", "secteur bancaire"}},
		{"Budget", []string{"budgétisation", "budgeting"}},
		{"Excel", []string{"microsoft excel", "ms excel"}},
		{"SAGE", []string{"sage comptabilité"}},
		{"Marchés publics", []string{"passation des marchés", "public procurement", "procurement"}},
		{"Suivi-évaluation", []string{"monitoring and evaluation", "évaluation de projets"}},
	},
	types.DomainEnergy: {
		{"Énergie renouvelable", []string{"renewable energy", "énergies renouvelables"}},
		{"Solaire photovoltaïque", []string{"solaire", "photovoltaïque", "solar", "pv"}},
		{"Éolien", []string{"wind energy", "énergie éolienne", "wind power"}},
		{"Hydrogène vert", []string{"green hydrogen", "hydrogène"}},
		{"Pétrole et gaz", []string{"oil and gas", "oil & gas", "hydrocarbures"}},
		{"Électricité", []string{"electricity"}},
		{"Réseaux électriques", []string{"power grid", "smart grid", "transport d'électricité"}},
		{"Efficacité énergétique", []string{"energy efficiency"}},
		{"Mines", []string{"mining", "secteur minier", "exploitation minière"}},
		{"Environnement", []string{"environment", "environmental"}},
		{"Études d'impact environnemental", []string{"eies", "environmental impact assessment"}},
	},
	types.DomainIndustry: {
		{"Gestion de production", []string{"production management", "planification de la production"}},
		{"Maintenance industrielle", []string{"gmao", "industrial maintenance"}},
		{"Lean Manufacturing", []string{"lean", "lean six sigma", "six sigma"}},
		{"Qualité", []string{"quality management", "management de la qualité"}},
		{"ISO 9001", []string{"iso9001"}},
		{"HSE", []string{"qhse", "hygiène sécurité environnement", "health and safety"}},
		{"Logistique", []string{"logistics"}},
		{"Supply Chain", []string{"supply chain management", "chaîne d'approvisionnement"}},
		{"Génie civil", []string{"civil engineering"}},
		{"AutoCAD", nil},
		{"BTP", []string{"bâtiment et travaux publics"}},
		{"Mécanique", []string{"mechanical engineering", "génie mécanique"}},
		{"Électromécanique", []string{"electromechanics"}},
	},
}

// defaultEdges links related technologies with a similarity in [0.5, 0.9]
var defaultEdges = []edge{
	{"HTML", "HTML5", 0.9},
	{"HTML", "CSS", 0.6},
	{"JavaScript", "React", 0.7},
	{"JavaScript", "Angular", 0.5},
	{"JavaScript", "Vue.js", 0.6},
	{"JavaScript", "Node.js", 0.7},
	{"JavaScript", "TypeScript", 0.8},
	{"React", "Vue.js", 0.6},
	{"React", "Angular", 0.6},
	{"Python", "Django", 0.7},
	{"Python", "Flask", 0.7},
	{"Python", "Data Science", 0.6},
	{"Python", "Machine Learning", 0.5},
	{"Machine Learning", "Intelligence Artificielle", 0.9},
	{"Machine Learning", "Data Science", 0.8},
	{"Data Science", "Data Analysis", 0.8},
	{"Data Analysis", "Power BI", 0.6},
	{"PHP", "Laravel", 0.7},
	{"PHP", "Symfony", 0.7},
	{"Java", "Spring Boot", 0.7},
	{"C#", ".NET", 0.8},
	{"SQL", "MySQL", 0.8},
	{"SQL", "PostgreSQL", 0.8},
	{"SQL", "Oracle Database", 0.7},
	{"MySQL", "PostgreSQL", 0.7},
	{"Docker", "Kubernetes", 0.7},
	{"DevOps", "CI/CD", 0.8},
	{"DevOps", "Docker", 0.6},
	{"AWS", "Microsoft Azure", 0.5},
	{"AWS", "Google Cloud", 0.5},
	{"Microsoft Azure", "Google Cloud", 0.5},
	{"Agile", "Scrum", 0.9},
	{"ERP", "SAP", 0.8},
	{"Comptabilité", "Audit", 0.6},
	{"Comptabilité", "SAGE", 0.6},
	{"Audit", "Contrôle de gestion", 0.5},
	{"Analyse financière", "Finance d'entreprise", 0.7},
	{"Comptabilité", "IFRS", 0.7},
	{"Trésorerie", "Finance d'entreprise", 0.6},
	{"Banque", "Microfinance", 0.7},
	{"Solaire photovoltaïque", "Énergie renouvelable", 0.9},
	{"Éolien", "Énergie renouvelable", 0.9},
	{"Hydrogène vert", "Énergie renouvelable", 0.7},
	{"Électricité", "Réseaux électriques", 0.8},
	{"Environnement", "Études d'impact environnemental", 0.8},
	{"Qualité", "ISO 9001", 0.8},
	{"Logistique", "Supply Chain", 0.9},
	{"Lean Manufacturing", "Gestion de production", 0.7},
	{"Mécanique", "Électromécanique", 0.8},
	{"Génie civil", "BTP", 0.8},
}
