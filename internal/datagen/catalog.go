package datagen

// plantKind is one combination of generation type and fuel, with the
// capacity range facilities of that kind are drawn from.
type plantKind struct {
	code     string
	fuelCode string
	origin   string
	source   string
	fuel     string
	minKW    float64
	maxKW    float64
}

var plantKinds = []plantKind{
	{"UHE", "PH", "Hídrica", "Potencial hidráulico", "Potencial hidráulico", 30000, 3000000},
	{"PCH", "PH", "Hídrica", "Potencial hidráulico", "Potencial hidráulico", 5000, 30000},
	{"CGH", "PH", "Hídrica", "Potencial hidráulico", "Potencial hidráulico", 100, 5000},
	{"UTE", "GN", "Fóssil", "Gás Natural", "Gás Natural", 1000, 1500000},
	{"UTE", "OD", "Fóssil", "Petróleo", "Óleo Diesel", 100, 200000},
	{"UTE", "CA", "Biomassa", "Agroindustriais", "Bagaço de Cana de Açúcar", 1000, 100000},
	{"EOL", "CV", "Eólica", "Cinética do vento", "Cinética do vento", 1000, 300000},
	{"UFV", "RS", "Solar", "Radiação solar", "Radiação solar", 100, 500000},
	{"UTN", "UR", "Nuclear", "Urânio", "Urânio", 600000, 1400000},
}

var plantKindWeights = []int{3, 5, 6, 3, 4, 4, 8, 12, 1}

const phaseOperating = "Operação"

var (
	phases       = []string{phaseOperating, "Construção", "Construção não iniciada"}
	phaseWeights = []int{80, 8, 12}

	grantTypes   = []string{"Autorização", "Concessão", "Registro"}
	grantWeights = []int{60, 10, 30}

	regimes = []string{
		"Produtor Independente de Energia",
		"Autoprodução de Energia",
		"Serviço Público",
		"Registro",
	}
	regimeWeights = []int{55, 15, 10, 20}

	nameSuffixes = []string{"", " I", " II", " III", " IV"}
)

// region is a state with the municipalities and sub-basin facilities in
// it are placed in.
type region struct {
	state          string
	basin          string
	lat, lon       float64
	municipalities []string
}

var regions = []region{
	{"MG", "Rio São Francisco", -18.5, -44.5, []string{"Belo Horizonte", "Uberlândia", "Três Marias", "Juiz de Fora"}},
	{"SP", "Rio Paraná", -22.0, -49.0, []string{"São Paulo", "Ribeirão Preto", "Ilha Solteira", "Araçatuba"}},
	{"BA", "Rio São Francisco", -12.5, -41.5, []string{"Juazeiro", "Sobradinho", "Paulo Afonso", "Caetité"}},
	{"RN", "Atlântico Nordeste Oriental", -5.8, -36.5, []string{"Parnamirim", "João Câmara", "Areia Branca"}},
	{"PR", "Rio Iguaçu", -24.9, -51.5, []string{"Foz do Iguaçu", "Guarapuava", "Londrina"}},
	{"RS", "Atlântico Sudeste", -30.0, -53.0, []string{"Santa Vitória do Palmar", "Osório", "Candiota"}},
	{"PA", "Rio Tocantins", -3.8, -51.0, []string{"Tucuruí", "Altamira", "Belém"}},
	{"RJ", "Atlântico Sudeste", -22.5, -42.5, []string{"Angra dos Reis", "Macaé", "Campos dos Goytacazes"}},
	{"PE", "Rio São Francisco", -8.4, -37.5, []string{"Petrolina", "Ipojuca", "Caruaru"}},
	{"GO", "Rio Paranaíba", -16.5, -49.5, []string{"Itumbiara", "Rio Verde", "Catalão"}},
}
