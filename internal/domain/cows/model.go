package cows

import "time"

// Cow es una entrada del registro tal como la devuelve el contrato.
// El cliente nunca la modifica ni la borra.
type Cow struct {
	// Index es la posición interna en el contrato (getIdByCowNum).
	Index uint64

	Number    uint64 // asignado por el contrato, > 0
	Mom       uint64 // 0 = sin madre registrada
	BirthDate time.Time
	Type      string // categoría libre: "Holstein", "Angus", ...
	Sex       string // set abierto, no se valida del lado cliente

	// Revisión 2: media en IPFS.
	ContentHash string
	MediaURL    string
}

// BirthInput son los tres campos del formulario tal cual: sin validar tipo, rango ni vacío.
type BirthInput struct {
	Mom  string
	Type string
	Sex  string
}

// MediaLink asocia un CID a una vaca (setCowURI). CowID llega crudo del formulario.
type MediaLink struct {
	CowID       string
	ContentHash string
}

// Tx resume una transacción minada.
type Tx struct {
	Hash string

	// CowNumber solo se completa para cowBirth (leído del evento CowBirth).
	CowNumber uint64
}
