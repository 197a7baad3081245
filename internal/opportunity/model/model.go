package model

// RawTable é a planilha já decodificada: linhas de células cruas.
// Linhas podem ter larguras diferentes (ragged). Nunca é mutada pelo core.
type RawTable [][]string

// Perfil do cliente (classificação A/B/C extraída de texto livre).
type Profile string

const (
	ProfileA       Profile = "A"
	ProfileB       Profile = "B"
	ProfileC       Profile = "C"
	ProfileUnknown Profile = "N/D"
)

// ColNotFound marca uma coluna lógica não localizada no cabeçalho.
const ColNotFound = -1

// ColumnMap é o resultado da detecção de cabeçalho: índice (0-based) de cada
// campo lógico ou ColNotFound, mais a linha do cabeçalho.
type ColumnMap struct {
	Consultant     int `json:"consultant"`
	Client         int `json:"client"`
	Product        int `json:"product"`
	Route          int `json:"route"`
	Profile        int `json:"profile"`
	HeaderRowIndex int `json:"headerRowIndex"`
}

// ProductColumn liga uma posição de coluna ao nome de produto derivado do
// cabeçalho (formato wide).
type ProductColumn struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type ShapeKind string

const (
	ShapeWide ShapeKind = "wide"
	ShapeLong ShapeKind = "long"
)

// TableShape é a variante detectada: Wide carrega as colunas de produto,
// Long carrega o índice da única coluna de produto.
type TableShape struct {
	Kind           ShapeKind       `json:"kind"`
	ProductColumns []ProductColumn `json:"productColumns,omitempty"`
	ProductIndex   int             `json:"productIndex,omitempty"`
}

// ClientRecord pertence exclusivamente à rota que o contém. Products cresce
// durante o passe de agregação; Profile é fixado na primeira linha vista.
type ClientRecord struct {
	Products map[string]struct{} `json:"-"`
	Profile  Profile             `json:"profile"`
}

// Hierarchy: Consultor → Rota → Cliente → ClientRecord. Reconstruída por
// inteiro a cada ingestão.
type Hierarchy map[string]map[string]map[string]*ClientRecord

// Stats são os contadores exibidos nos cards do dashboard.
type Stats struct {
	Consultants   int `json:"consultants"`
	Clients       int `json:"clients"`
	Products      int `json:"products"`
	Opportunities int `json:"opportunities"`
}

type WarningKind string

const (
	WarnEmptyInput     WarningKind = "empty_input"
	WarnHeaderFallback WarningKind = "header_fallback"
	WarnNoMatch        WarningKind = "no_match"
)

// Warning é recuperável: volta no resultado da ingestão, nunca como erro.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
	// Sample: valores de consultor vistos nas primeiras linhas de dados
	// (diagnóstico de no_match).
	Sample []string `json:"sample,omitempty"`
	// Suggestion: nome de consultor mais próximo do esperado, se houver.
	Suggestion string `json:"suggestion,omitempty"`
}

// Snapshot é a saída durável de uma ingestão; vive até a próxima substituí-la.
type Snapshot struct {
	Hierarchy Hierarchy           `json:"-"`
	Catalog   map[string]struct{} `json:"-"`
	Columns   ColumnMap           `json:"columns"`
	Shape     ShapeKind           `json:"shape"`
	Stats     Stats               `json:"stats"`
	Warnings  []Warning           `json:"warnings,omitempty"`
	// ConsultantKey é a chave do nível consultor na hierarquia (valor da
	// célula, que pode diferir do nome de exibição quando o match foi
	// parcial). Vazio quando nenhuma linha casou.
	ConsultantKey string `json:"consultantKey,omitempty"`
	Source        string `json:"source,omitempty"`
}

// Resolution é a resposta para um cliente selecionado.
type Resolution struct {
	Missing []string `json:"missing"`
	Sold    []string `json:"sold"`
	Profile Profile  `json:"profile"`
}
