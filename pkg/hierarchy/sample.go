package hierarchy

// Sample returns a small respiratory-medicine hierarchy. It is used by the
// "sample" command and as a fixture in tests across the module.
func Sample() Document {
	return Document{
		Title: "Respiratory System",
		Topics: Hierarchy{
			{
				ID: "anatomy", Title: "Respiratory Anatomy",
				Subtopics: []Subtopic{
					{ID: "upper-airways", Title: "Upper Airways", Cards: []Card{
						{ID: "nose-pharynx", Title: "Nose and Pharynx", Content: "Entry points for air into the respiratory system"},
						{ID: "larynx", Title: "Larynx", Content: "Voice box and airway protection"},
						{ID: "trachea", Title: "Trachea", Content: "Windpipe connecting larynx to bronchi"},
					}},
					{ID: "lower-airways", Title: "Lower Airways", Cards: []Card{
						{ID: "bronchi", Title: "Bronchi", Content: "Primary branches of the trachea"},
						{ID: "bronchioles", Title: "Bronchioles", Content: "Smaller airway branches without cartilage"},
						{ID: "alveoli", Title: "Alveoli", Content: "Tiny air sacs where gas exchange occurs"},
					}},
					{ID: "chest-structures", Title: "Chest Structures", Cards: []Card{
						{ID: "ribs", Title: "Ribs and Sternum", Content: "Bony cage protecting the lungs"},
						{ID: "diaphragm", Title: "Diaphragm", Content: "Primary muscle of respiration"},
						{ID: "intercostals", Title: "Intercostal Muscles", Content: "Muscles between ribs aiding respiration"},
					}},
				},
			},
			{
				ID: "physiology", Title: "Respiratory Physiology",
				Subtopics: []Subtopic{
					{ID: "ventilation", Title: "Ventilation", Cards: []Card{
						{ID: "inspiration", Title: "Inspiration", Content: "Active process of breathing in"},
						{ID: "expiration", Title: "Expiration", Content: "Passive process of breathing out"},
						{ID: "lung-volumes", Title: "Lung Volumes", Content: "Different volumes of air in the lungs"},
					}},
					{ID: "gas-exchange", Title: "Gas Exchange", Cards: []Card{
						{ID: "diffusion", Title: "Diffusion", Content: "Movement of gases across alveolar membrane"},
						{ID: "oxygen-transport", Title: "Oxygen Transport", Content: "How oxygen is carried in the blood"},
						{ID: "co2-transport", Title: "CO2 Transport", Content: "How carbon dioxide is carried in the blood"},
					}},
					{ID: "regulation", Title: "Respiratory Regulation", Cards: []Card{
						{ID: "chemoreceptors", Title: "Chemoreceptors", Content: "Sensors detecting blood gas levels"},
						{ID: "respiratory-center", Title: "Respiratory Center", Content: "Brain regions controlling breathing"},
						{ID: "neural-control", Title: "Neural Control", Content: "Nervous system regulation of respiration"},
					}},
				},
			},
			{
				ID: "pathophysiology", Title: "Respiratory Pathophysiology",
				Subtopics: []Subtopic{
					{ID: "obstructive-diseases", Title: "Obstructive Diseases", Cards: []Card{
						{ID: "asthma", Title: "Asthma", Content: "Chronic inflammatory airway disease"},
						{ID: "copd", Title: "COPD", Content: "Chronic obstructive pulmonary disease"},
						{ID: "bronchiectasis", Title: "Bronchiectasis", Content: "Abnormal widening of airways"},
					}},
					{ID: "restrictive-diseases", Title: "Restrictive Diseases", Cards: []Card{
						{ID: "pneumonia", Title: "Pneumonia", Content: "Infection of the lung tissue"},
						{ID: "fibrosis", Title: "Pulmonary Fibrosis", Content: "Scarring of lung tissue"},
						{ID: "pleural-effusion", Title: "Pleural Effusion", Content: "Fluid accumulation in pleural space"},
					}},
					{ID: "vascular-disorders", Title: "Vascular Disorders", Cards: []Card{
						{ID: "pulmonary-embolism", Title: "Pulmonary Embolism", Content: "Blood clot in pulmonary arteries"},
						{ID: "pulmonary-hypertension", Title: "Pulmonary Hypertension", Content: "High blood pressure in lung arteries"},
						{ID: "ards", Title: "ARDS", Content: "Acute respiratory distress syndrome"},
					}},
				},
			},
			{
				ID: "assessment", Title: "Respiratory Assessment",
				Subtopics: []Subtopic{
					{ID: "history-taking", Title: "History Taking", Cards: []Card{
						{ID: "symptoms", Title: "Respiratory Symptoms", Content: "Dyspnea, cough, chest pain, etc."},
						{ID: "risk-factors", Title: "Risk Factors", Content: "Smoking, occupation, family history"},
						{ID: "medications", Title: "Medications", Content: "Current respiratory medications"},
					}},
					{ID: "physical-exam", Title: "Physical Examination", Cards: []Card{
						{ID: "inspection", Title: "Inspection", Content: "Visual assessment of chest and breathing"},
						{ID: "palpation", Title: "Palpation", Content: "Feeling for abnormalities"},
						{ID: "percussion", Title: "Percussion", Content: "Tapping to assess underlying structures"},
						{ID: "auscultation", Title: "Auscultation", Content: "Listening to breath sounds"},
					}},
					{ID: "diagnostic-tests", Title: "Diagnostic Tests", Cards: []Card{
						{ID: "pulmonary-function", Title: "Pulmonary Function Tests", Content: "Measures of lung capacity and flow"},
						{ID: "arterial-blood-gas", Title: "Arterial Blood Gas", Content: "Measurement of blood oxygen and CO2"},
						{ID: "imaging", Title: "Chest Imaging", Content: "X-rays, CT scans, MRI of the chest"},
					}},
				},
			},
		},
	}
}
