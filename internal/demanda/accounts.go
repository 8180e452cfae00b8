package demanda

// Fixed chart of accounts for the maintenance cost center. Family is empty
// for administrative and contract lines that never receive demand records;
// those lines still appear in the reconciliation table with zero realized.
var ChartOfAccounts = []AccountEntry{
	{Line: "22.01 - Máquinas e Equipamentos", Number: "4120100004", Family: "MAQUINAS / EQUIPAMENTOS CORRETIVA"},
	{Line: "22.02 - Refrigeração", Number: "4120100006", Family: "REFRIGERAÇÃO CORRETIVA"},
	{Line: "22.03 - Civil Predial/PPCI-SPDA/ETE-ETA/Esgoto", Number: "4120100003", Family: "MANUTENÇÃO CORRETIVA CIVIL PREDIAL/ PPCI-SPDA/ETE-ETA/ESGOTO"},
	{Line: "22.04 - Carrinhos", Number: "4120100005", Family: "CARRINHOS CORRETIVA"},
	{Line: "22.05 - Elétrica/Geradores/Nobreaks", Number: "4120100005", Family: "ELETRICA/GERADORES/ NOBREAKS CORRETIVA"},
	{Line: "22.06 - Garantias Loc. de Maq/Equip/Emp", Number: "4120100023", Family: "GARANTIA"},
	{Line: "22.07 - Manutenção Empilhadeiras", Number: "4120100038", Family: "EMPILHADEIRAS CORRETIVA"},
	{Line: "22.08 - Climatização", Number: "4120100039", Family: "CLIMATIZAÇÃO CORRETIVA"},
	{Line: "22.09 - Móveis e Utensílios de Escritório", Number: "4120100002", Family: "MOVEIS/  UTENSILIOS "},
	{Line: "22.10 - Manutenção com MKT", Number: "4120100042"},
	{Line: "23.01 - Manut. Prev. Máquinas e Equipamentos", Number: "4120100001", Family: "MAQUINAS / EQUIPAMENTOS PREVENTIVA"},
	{Line: "23.02 - Manut. Prev. Refrigeração", Number: "4120100012", Family: "REFRIGERAÇÃO PREVENTIVA"},
	{Line: "23.03 - Manut. Prev. Civil Predial/PPCI-SPDA/ETE-ETA/Esgoto", Number: "4120100026", Family: "MANUTENÇÃO PREVENTIVA CIVIL PREDIAL/ PPCI-SPDA/ETE-ETA/ESGOTO "},
	{Line: "23.04 - Manut. Prev. Carrinhos", Number: "4120100028", Family: "CARRINHOS PREVENTIVA"},
	{Line: "23.05 - Manut. Prev. Elétrica/Geradores/Nobreaks", Number: "4120100027", Family: "ELETRICA/GERADORES/ NOBREAKS PREVENTIVA"},
	{Line: "23.06 - Manut. Prev. Cons./Esgoto/Contr Pragas/Limp Reservat", Number: "4120100029"},
	{Line: "23.07 - Manut. Prev. Empilhadeiras", Number: "4120100041", Family: "EMPILHADEIRAS PREVENTIVA"},
	{Line: "23.08 - Manut. Climatização", Number: "4120100040", Family: "CLIMATIZAÇÃO PREVENTIVA"},
	{Line: "23.09 - Contratos Manut. Prev Máquinas e Equipamentos", Number: "4120100010"},
	{Line: "23.10 - Contratos Manut. Prev. Refrigeração", Number: "4120100011"},
	{Line: "23.11 - Contratos Manut. Prev. Civil Predial/PPCI-SPDA/ETE-ETA/Esgoto", Number: "4120100025"},
	{Line: "23.12 - Contratos Manut. Prev. Elétrica/Geradores/Nobreaks", Number: "4120100024"},
	{Line: "23.13 - Contratos Manut. Prev. Conserv./Esgoto/Limp Reservat", Number: "4120100030"},
	{Line: "23.14 - Contratos Manut. Prev. Climatização", Number: "4120100037"},
}

// Store membership for the two managed subregions. Stores outside both
// sets group under SubregionOther.
var (
	northStores = setOfInts(85, 165, 250, 305, 335, 385, 405, 905)
	valeStores  = setOfInts(115, 135, 190, 195, 225, 255, 270, 295, 310, 325, 375, 420, 425, 480, 825)
)

func setOfInts(ids ...int) map[int]struct{} {
	m := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

// ParseSubregion maps a subregion label from the planning sheet.
func ParseSubregion(label string) Subregion {
	switch canonical(label) {
	case "NORTE":
		return SubregionNorth
	case "VALE":
		return SubregionVale
	default:
		return SubregionOther
	}
}

// SubregionOf resolves a store's subregion from the fixed membership sets.
func SubregionOf(storeID int) Subregion {
	if _, ok := northStores[storeID]; ok {
		return SubregionNorth
	}
	if _, ok := valeStores[storeID]; ok {
		return SubregionVale
	}
	return SubregionOther
}

// AccountByFamily finds the account line a demand family maps to.
func AccountByFamily(family string) (AccountEntry, bool) {
	key := canonical(family)
	if key == "" {
		return AccountEntry{}, false
	}
	for _, acc := range ChartOfAccounts {
		if acc.Family != "" && canonical(acc.Family) == key {
			return acc, true
		}
	}
	return AccountEntry{}, false
}
